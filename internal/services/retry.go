package services

import (
	"context"
	"time"

	"github.com/fitforge/fitforge/pkg/logger"
)

// RetryPolicy drives retry loops around transient failures. Backoff maps
// the 1-based attempt number that just failed to the wait before the next
// attempt. Retryable reports whether an error is worth retrying at all.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Retryable   func(err error) bool
}

// ExponentialBackoff doubles the base delay after each failed attempt:
// base, 2*base, 4*base, ...
func ExponentialBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base << (attempt - 1)
	}
}

// Do runs op until it succeeds, returns a non-retryable error, exhausts
// MaxAttempts, or the context is cancelled. It returns the last error seen.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		wait := time.Duration(0)
		if p.Backoff != nil {
			wait = p.Backoff(attempt)
		}
		logger.Warn().
			Int("attempt", attempt).
			Dur("wait", wait).
			Err(err).
			Msg("retrying after transient error")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return err
}
