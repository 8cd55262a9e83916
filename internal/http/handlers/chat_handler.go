// README: Conversation turn handler.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/conversation"
	"wayfarer/internal/recommend"
	"wayfarer/internal/service"
)

// turnTimeout bounds one whole turn including the gateway's bounded retries.
const turnTimeout = 60 * time.Second

// ChatHandler serves conversation turns. Each request carries the full
// message log for its session; nothing is held server-side, so concurrent
// turns for the same session must be serialized by the caller.
type ChatHandler struct {
	advisor *service.TripAdvisor
}

func NewChatHandler(advisor *service.TripAdvisor) *ChatHandler {
	return &ChatHandler{advisor: advisor}
}

type chatReq struct {
	Messages []conversation.Message `json:"messages"`
}

type gatheringResp struct {
	Message string `json:"message"`
}

type recommendingResp struct {
	Summary     string                 `json:"summary"`
	TravelPlans []recommend.TravelPlan `json:"travelPlans"`
}

// Turn handles POST /api/chat.
func (h *ChatHandler) Turn(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "validation_error", "invalid_request", "invalid json", false)
		return
	}
	// Fail fast on malformed logs; no LLM call is attempted.
	if err := conversation.Validate(req.Messages); err != nil {
		writeTurnError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), turnTimeout)
	defer cancel()

	result, err := h.advisor.Advise(ctx, req.Messages)
	if err != nil {
		writeTurnError(c, err)
		return
	}

	if result.Phase == conversation.PhaseGathering {
		writeJSON(c, http.StatusOK, gatheringResp{Message: result.Message})
		return
	}
	writeJSON(c, http.StatusOK, recommendingResp{
		Summary:     result.Summary,
		TravelPlans: result.Plans,
	})
}
