// README: Geo-context lookups (reverse geocode + nearby attractions) with a redis cache.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"googlemaps.github.io/maps"

	"wayfarer/internal/prompt"
)

const (
	attractionRadiusM = 30000
	cityRadiusM       = 50000
	maxAttractions    = 8
	maxCities         = 5
	minRating         = 3.5

	cacheTTL = time.Hour
)

// GeoContextService resolves a clicked coordinate into the geographic context
// the recommendation prompt needs: a location name, nearby attractions with
// distances, and nearby cities. Lookups are cached in redis keyed by rounded
// coordinates so repeated taps on the same spot don't burn Places quota.
type GeoContextService struct {
	client *maps.Client
	cache  *redis.Client
}

// NewGeoContextService creates a service with the given API key. cache may be
// nil, in which case every lookup goes to the API.
func NewGeoContextService(apiKey string, cache *redis.Client) (*GeoContextService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeoContextService{client: client, cache: cache}, nil
}

// Lookup builds the geo context for a coordinate. A coordinate that reverse
// geocoding cannot resolve to any address is treated as open water.
func (s *GeoContextService) Lookup(ctx context.Context, lat, lng float64) (*prompt.GeoContext, error) {
	key := cacheKey(lat, lng)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	geo := &prompt.GeoContext{Lat: lat, Lng: lng}
	loc := &maps.LatLng{Lat: lat, Lng: lng}

	results, err := s.client.ReverseGeocode(ctx, &maps.GeocodingRequest{LatLng: loc})
	if err != nil {
		return nil, fmt.Errorf("reverse geocode error: %w", err)
	}
	if len(results) == 0 {
		geo.OpenWater = true
	} else {
		geo.LocationName = locationName(results[0])
	}

	attractions, err := s.nearbyAttractions(ctx, loc)
	if err != nil {
		// Attractions are an enrichment; the prompt has a variant for their
		// absence, so a Places failure degrades instead of aborting.
		log.Printf("nearby attractions lookup failed: %v", err)
	}
	geo.Attractions = attractions

	cities, err := s.nearbyCities(ctx, loc)
	if err != nil {
		log.Printf("nearby cities lookup failed: %v", err)
	}
	geo.Cities = cities

	s.toCache(ctx, key, geo)
	return geo, nil
}

func (s *GeoContextService) nearbyAttractions(ctx context.Context, loc *maps.LatLng) ([]prompt.Attraction, error) {
	resp, err := s.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: loc,
		Radius:   attractionRadiusM,
		Type:     "tourist_attraction",
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var attractions []prompt.Attraction
	for _, result := range resp.Results {
		if result.Rating < minRating {
			continue
		}
		distKm := haversineKm(loc.Lat, loc.Lng, result.Geometry.Location.Lat, result.Geometry.Location.Lng)
		attractions = append(attractions, prompt.Attraction{
			Name:           result.Name,
			DistanceMeters: distKm * 1000,
			Rating:         result.Rating,
		})
	}

	sortByDistance(attractions, func(a prompt.Attraction) float64 { return a.DistanceMeters })
	if len(attractions) > maxAttractions {
		attractions = attractions[:maxAttractions]
	}
	return attractions, nil
}

func (s *GeoContextService) nearbyCities(ctx context.Context, loc *maps.LatLng) ([]string, error) {
	resp, err := s.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: loc,
		Radius:   cityRadiusM,
		Type:     "locality",
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var cities []string
	for _, result := range resp.Results {
		cities = append(cities, result.Name)
		if len(cities) >= maxCities {
			break
		}
	}
	return cities, nil
}

// locationName prefers the locality component over the raw formatted address.
func locationName(r maps.GeocodingResult) string {
	for _, component := range r.AddressComponents {
		for _, t := range component.Types {
			if t == "locality" || t == "administrative_area_level_1" {
				return component.LongName
			}
		}
	}
	return r.FormattedAddress
}

// cacheKey rounds to ~3 decimals (about 110m) so neighbouring taps share an entry.
func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("geo:%.3f:%.3f", lat, lng)
}

func (s *GeoContextService) fromCache(ctx context.Context, key string) *prompt.GeoContext {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("geo cache read failed: %v", err)
		}
		return nil
	}
	var geo prompt.GeoContext
	if err := json.Unmarshal(data, &geo); err != nil {
		return nil
	}
	return &geo
}

func (s *GeoContextService) toCache(ctx context.Context, key string, geo *prompt.GeoContext) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(geo)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		log.Printf("geo cache write failed: %v", err)
	}
}
