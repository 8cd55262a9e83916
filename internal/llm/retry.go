// README: Bounded retry with exponential backoff around a provider call.
package llm

import (
	"context"
	"time"

	"wayfarer/internal/conversation"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)

// CompleteWithRetry wraps one logical completion in up to three attempts with
// exponential backoff. Only transient outcomes (rate limit, upstream 5xx,
// network) are retried; auth and bad-request failures are deterministic, so
// resending them would only waste quota.
func CompleteWithRetry(ctx context.Context, p Provider, system string, msgs []conversation.Message, opts Options) (*Result, error) {
	return completeWithRetry(ctx, p, system, msgs, opts, defaultMaxAttempts, defaultBaseDelay)
}

func completeWithRetry(ctx context.Context, p Provider, system string, msgs []conversation.Message, opts Options, attempts int, base time.Duration) (*Result, error) {
	var lastErr error
	delay := base

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		res, err := p.Complete(ctx, system, msgs, opts)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !Retryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}
