// README: Shared handler utilities (JSON helpers, error envelope mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/conversation"
	"wayfarer/internal/llm"
	"wayfarer/internal/recommend"
)

// apiError is the stable failure envelope. Callers decide whether to retry
// from the explicit flag, never by parsing the human-readable message.
type apiError struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, category, code, message string, retryable bool) {
	writeJSON(c, status, apiError{
		Error:     category,
		Message:   message,
		Code:      code,
		Retryable: retryable,
	})
}

// writeTurnError maps a turn failure onto the envelope. Parse and schema
// failures are retryable from the caller's perspective: the same request,
// resent, may get a better-formed completion from a stochastic model.
func writeTurnError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, conversation.ErrBadMessage):
		writeError(c, http.StatusBadRequest, "validation_error", "invalid_request",
			"Every message needs a role and some text.", false)
	case errors.Is(err, llm.ErrAuth):
		writeError(c, http.StatusInternalServerError, "gateway_error", "auth_failed",
			"The assistant is misconfigured. Please contact support.", false)
	case errors.Is(err, llm.ErrRateLimited):
		writeError(c, http.StatusTooManyRequests, "gateway_error", "rate_limited",
			"The assistant is busy right now. Please try again in a moment.", true)
	case errors.Is(err, llm.ErrBadRequest):
		writeError(c, http.StatusInternalServerError, "gateway_error", "bad_request",
			"The assistant could not process this conversation.", false)
	case errors.Is(err, llm.ErrNetwork):
		writeError(c, http.StatusBadGateway, "gateway_error", "network_error",
			"The assistant could not be reached. Please try again.", true)
	case errors.Is(err, llm.ErrUpstream), errors.Is(err, llm.ErrEmptyResponse):
		writeError(c, http.StatusBadGateway, "gateway_error", "upstream_error",
			"The assistant did not respond. Please try again.", true)
	case errors.Is(err, recommend.ErrParse), errors.Is(err, recommend.ErrSchema):
		writeError(c, http.StatusBadGateway, "ai_response_error", "invalid_ai_response",
			"The assistant gave an unusable answer. Please try again.", true)
	default:
		writeError(c, http.StatusInternalServerError, "internal_error", "internal_error",
			"Something went wrong on our side.", false)
	}
}
