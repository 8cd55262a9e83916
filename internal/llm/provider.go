// README: LLM provider contract and classified gateway outcomes.
package llm

import (
	"context"
	"errors"

	"wayfarer/internal/conversation"
)

// Classified gateway outcomes. Exactly one HTTP call is made per Complete
// invocation; whether an outcome is worth retrying is the caller's decision
// (see CompleteWithRetry).
var (
	// ErrAuth means the upstream rejected our credentials. Configuration
	// problem, never retryable.
	ErrAuth = errors.New("llm: authentication failed")

	// ErrRateLimited means the upstream throttled us (HTTP 429).
	ErrRateLimited = errors.New("llm: rate limited")

	// ErrUpstream means the upstream failed on its side (HTTP 5xx).
	ErrUpstream = errors.New("llm: upstream error")

	// ErrBadRequest means we sent something the upstream rejected
	// (non-429 4xx). Retrying the same request cannot help.
	ErrBadRequest = errors.New("llm: bad request")

	// ErrNetwork means no response arrived at all.
	ErrNetwork = errors.New("llm: network failure")

	// ErrEmptyResponse means the call succeeded but carried no usable text.
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Retryable reports whether resending the same request might change the outcome.
func Retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUpstream) || errors.Is(err, ErrNetwork)
}

// Options tune one completion call.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
	// WantJSON biases the model toward emitting a single JSON object.
	WantJSON bool
}

// TokenUsage is the upstream's accounting for one call.
type TokenUsage struct {
	Prompt     int
	Completion int
	Total      int
}

// Result is one completion.
type Result struct {
	Text  string
	Usage TokenUsage
}

// Provider issues a single completion call against an external model. The
// system instruction travels as the first entry of the serialized
// conversation; local-only message fields (timestamps) are stripped.
type Provider interface {
	Complete(ctx context.Context, system string, msgs []conversation.Message, opts Options) (*Result, error)
}
