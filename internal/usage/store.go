// README: Postgres persistence for the LLM token-usage ledger.
package usage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store appends rows to the llm_usage ledger.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Insert records the accounting for one completed LLM call.
func (s *Store) Insert(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO llm_usage (model, phase, prompt_tokens, completion_tokens, created_at)
		VALUES ($1, $2, $3, $4, now())
	`, r.Model, r.Phase, r.PromptTokens, r.CompletionTokens)
	return err
}
