// README: Geographic recommendation turn handler (map-mode variant).
package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/prompt"
	"wayfarer/internal/service"
)

// GeoResolver enriches a bare coordinate with a location name, nearby
// attractions and nearby cities. Implemented by maps.GeoContextService.
type GeoResolver interface {
	Lookup(ctx context.Context, lat, lng float64) (*prompt.GeoContext, error)
}

// LocationHandler serves map-tap recommendation turns.
type LocationHandler struct {
	advisor  *service.TripAdvisor
	resolver GeoResolver
}

// NewLocationHandler wires the handler. resolver may be nil, in which case
// the caller must supply the geographic context itself.
func NewLocationHandler(advisor *service.TripAdvisor, resolver GeoResolver) *LocationHandler {
	return &LocationHandler{advisor: advisor, resolver: resolver}
}

type coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type locationReq struct {
	Coordinates       *coordinates        `json:"coordinates"`
	LocationName      string              `json:"locationName"`
	NearbyAttractions []prompt.Attraction `json:"nearbyAttractions"`
	NearbyCities      []string            `json:"nearbyCities"`
	OpenWater         bool                `json:"openWater"`
}

// Recommend handles POST /api/recommendations/location.
func (h *LocationHandler) Recommend(c *gin.Context) {
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid_request", "invalid json", false)
		return
	}
	// Coordinates must be present and numeric before any LLM call.
	if req.Coordinates == nil || req.Coordinates.Lat == nil || req.Coordinates.Lng == nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid_request",
			"coordinates with numeric lat and lng are required", false)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	geo := prompt.GeoContext{
		LocationName: req.LocationName,
		Lat:          *req.Coordinates.Lat,
		Lng:          *req.Coordinates.Lng,
		Attractions:  req.NearbyAttractions,
		Cities:       req.NearbyCities,
		OpenWater:    req.OpenWater,
	}

	// A bare coordinate gets enriched via the maps collaborator; supplied
	// context is always trusted verbatim.
	if h.resolver != nil && geo.LocationName == "" && len(geo.Attractions) == 0 && !geo.OpenWater {
		if resolved, err := h.resolver.Lookup(ctx, geo.Lat, geo.Lng); err != nil {
			log.Printf("geo lookup failed, continuing with caller data: %v", err)
		} else {
			geo = *resolved
		}
	}

	result, err := h.advisor.AdviseForLocation(ctx, geo)
	if err != nil {
		writeTurnError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, recommendingResp{
		Summary:     result.Summary,
		TravelPlans: result.Plans,
	})
}
