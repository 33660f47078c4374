// Package retry provides a generic exponential-backoff retry combinator
// used to wrap upstream network calls.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jpillora/backoff"
)

// Policy controls the retry schedule: delay doubles per attempt from
// BaseDelay, capped at MaxDelay, with ±10% jitter.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultPolicy matches the analyzer defaults: 3 attempts, 1s base, 5s cap.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: 5 * time.Second}
}

// Do runs op until it succeeds or the policy's attempts are exhausted.
// The final error wraps the last failure. Sleeps are interruptible via ctx.
func Do[T any](ctx context.Context, policy Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	b := &backoff.Backoff{
		Min:    policy.BaseDelay,
		Max:    policy.MaxDelay,
		Factor: 2,
	}

	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == policy.MaxAttempts-1 {
			break
		}

		delay := jitter(b.Duration())
		if delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
	return zero, fmt.Errorf("all %d attempts failed: %w", policy.MaxAttempts, lastErr)
}

// jitter spreads a delay by ±10% so concurrent retries don't align.
func jitter(d time.Duration) time.Duration {
	factor := 0.9 + rand.Float64()*0.2
	return time.Duration(float64(d) * factor)
}
