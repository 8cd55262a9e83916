// README: Best-effort token-usage accounting around LLM calls.
package usage

import (
	"context"
	"log"
)

// Record is the accounting for one completed LLM call. This is bookkeeping
// only; nothing here throttles or budgets anything.
type Record struct {
	Model            string
	Phase            string
	PromptTokens     int
	CompletionTokens int
}

// Service writes usage records without ever failing the caller's turn.
// A nil *Service is valid and records nothing.
type Service struct {
	store *Store
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Track persists one record, logging instead of propagating failures.
func (s *Service) Track(ctx context.Context, r Record) {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Insert(ctx, r); err != nil {
		log.Printf("usage tracking failed: %v", err)
	}
}
