package batch

import (
	"context"
	"time"
)

// RetryPolicy controls exponential-backoff retry behavior.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt,
	// so the total attempt budget is MaxRetries+1.
	MaxRetries int

	// InitialDelay is the backoff before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the backoff; the delay doubles per retry up to this.
	MaxDelay time.Duration
}

// DefaultRetryPolicy returns the standard policy: 3 retries, 1s initial
// delay, 10s cap.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   3,
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
	}
}

// Delay returns the backoff preceding the k-th retry (k starts at 1):
// min(InitialDelay*2^(k-1), MaxDelay). The sequence is non-decreasing.
func (p RetryPolicy) Delay(k int) time.Duration {
	d := p.InitialDelay
	for i := 1; i < k; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// Retry runs op until it succeeds or the policy's attempt budget is
// exhausted, sleeping the backoff delay between attempts. The first
// successful result is returned immediately and earlier errors are
// discarded. When every attempt fails, the last error is returned
// unchanged, not wrapped or aggregated. A context cancellation during
// a backoff wait aborts retrying with the context's error.
func Retry[T any](ctx context.Context, policy RetryPolicy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := policy.MaxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		if err := sleep(ctx, policy.Delay(attempt)); err != nil {
			return zero, err
		}
	}
	return zero, lastErr
}
