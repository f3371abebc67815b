package retry

import (
	"context"
	"fmt"
	"time"

	"reviewsync/internal/domain"
)

// Policy bounds one wrapped network call. Delays holds the wait before
// retry n; the last entry is reused when MaxRetries exceeds its length.
type Policy struct {
	MaxRetries int
	Delays     []time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 3,
		Delays: []time.Duration{
			500 * time.Millisecond,
			1500 * time.Millisecond,
			3 * time.Second,
		},
	}
}

func (p Policy) delay(retry int) time.Duration {
	if len(p.Delays) == 0 {
		return 0
	}
	if retry >= len(p.Delays) {
		return p.Delays[len(p.Delays)-1]
	}
	return p.Delays[retry]
}

// Do runs fn up to 1+MaxRetries times. Only errors tagged retryable are
// repeated; not-found and rate-limit classifications propagate at once
// without consuming the budget. A pending delay aborts immediately on
// context cancellation.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.delay(attempt - 1)):
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if !domain.IsRetryable(lastErr) {
			return lastErr
		}
		if domain.CodeOf(lastErr) == domain.CodeRateLimited {
			return lastErr
		}
		if domain.IsCancellation(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("retries exhausted after %d attempts: %w", p.MaxRetries+1, lastErr)
}
