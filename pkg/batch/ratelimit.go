package batch

import (
	"context"
	"sync"
	"time"
)

// RateLimiter enforces a minimum time interval between successive
// invocations of a throttled operation. It is safe for concurrent use:
// when multiple goroutines throttle through the same limiter, each
// admitted call is spaced at least the minimum interval after the
// previous one.
type RateLimiter struct {
	minInterval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewRateLimiter creates a limiter with the given minimum interval
// between invocations. A non-positive interval disables throttling.
func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	return &RateLimiter{minInterval: minInterval}
}

// Throttle waits until at least the minimum interval has elapsed since
// the previous throttled invocation, then runs op. The op's error is
// returned unchanged; Throttle performs no retries of its own.
func (l *RateLimiter) Throttle(ctx context.Context, op func() error) error {
	if _, err := l.Wait(ctx); err != nil {
		return err
	}
	return op()
}

// Wait blocks until the limiter permits the next invocation and returns
// how long it waited. The first call on a fresh limiter never waits.
func (l *RateLimiter) Wait(ctx context.Context) (time.Duration, error) {
	l.mu.Lock()
	now := time.Now()
	var delay time.Duration
	if !l.last.IsZero() && l.minInterval > 0 {
		if elapsed := now.Sub(l.last); elapsed < l.minInterval {
			delay = l.minInterval - elapsed
		}
	}
	// Reserve the slot before sleeping so concurrent callers queue up
	// behind each other instead of sharing the same gap.
	l.last = now.Add(delay)
	l.mu.Unlock()

	if err := sleep(ctx, delay); err != nil {
		return 0, err
	}
	return delay, nil
}

// ThrottleValue runs op under the limiter and returns its value.
// Methods cannot be generic, hence the package-level helper.
func ThrottleValue[T any](ctx context.Context, l *RateLimiter, op func() (T, error)) (T, error) {
	var zero T
	if _, err := l.Wait(ctx); err != nil {
		return zero, err
	}
	return op()
}
