package service

import (
	"context"
	"math/rand"
	"time"
)

// RetryPolicy governs provider-facing retries. Delays double per attempt
// from BaseDelay; Jitter adds up to that fraction of the delay on top.
// A zero BaseDelay makes the policy suitable for tests.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      float64
}

// DefaultRetryPolicy is the production policy for schema and problem
// generation calls.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Jitter:      0.2,
	}
}

// Do invokes fn until it succeeds, attempts are exhausted, or the context
// is cancelled. The last error is returned when all attempts fail.
func (p RetryPolicy) Do(ctx context.Context, fn func(attempt int) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := p.BaseDelay
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && delay > 0 {
			wait := delay
			if p.Jitter > 0 {
				wait += time.Duration(rand.Float64() * p.Jitter * float64(delay))
			}
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}

		if err := fn(attempt); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
