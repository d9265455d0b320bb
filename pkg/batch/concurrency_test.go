package batch

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunWithConcurrency_PreservesInputOrder(t *testing.T) {
	items := []int{5, 1, 3, 2, 4}

	// Later completions must not displace earlier slots: each worker
	// sleeps proportionally to its value, so item 5 finishes last.
	got, err := RunWithConcurrency(context.Background(), items, func(_ context.Context, n int) (int, error) {
		time.Sleep(time.Duration(n) * 10 * time.Millisecond)
		return n, nil
	}, 5)
	if err != nil {
		t.Fatalf("RunWithConcurrency() error: %v", err)
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("results = %v, want input order %v", got, items)
	}
}

func TestRunWithConcurrency_RespectsLimit(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	const limit = 3

	var inflight, peak atomic.Int32
	_, err := RunWithConcurrency(context.Background(), items, func(_ context.Context, n int) (int, error) {
		cur := inflight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inflight.Add(-1)
		return n, nil
	}, limit)
	if err != nil {
		t.Fatalf("RunWithConcurrency() error: %v", err)
	}

	if got := peak.Load(); got > limit {
		t.Errorf("peak in-flight = %d, want <= %d", got, limit)
	}
}

func TestRunWithConcurrency_EmptyInput(t *testing.T) {
	invoked := false

	got, err := RunWithConcurrency(context.Background(), nil, func(_ context.Context, n int) (int, error) {
		invoked = true
		return n, nil
	}, 4)
	if err != nil {
		t.Fatalf("RunWithConcurrency() error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("results = %v, want empty slice", got)
	}
	if invoked {
		t.Error("worker invoked for empty input")
	}
}

func TestRunWithConcurrency_WorkerFailureAborts(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	wantErr := errors.New("item 3 exploded")

	var calls atomic.Int32
	got, err := RunWithConcurrency(context.Background(), items, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		if n == 3 {
			return 0, wantErr
		}
		time.Sleep(5 * time.Millisecond)
		return n, nil
	}, 2)

	if !errors.Is(err, wantErr) {
		t.Errorf("RunWithConcurrency() error = %v, want %v", err, wantErr)
	}
	if got != nil {
		t.Errorf("results = %v, want nil on failure", got)
	}
	// Fail-fast: admission stops once the failure is observed, so not
	// every item is attempted.
	if calls.Load() == int32(len(items)) {
		t.Log("all items were admitted before the failure propagated")
	}
}

func TestRunWithConcurrency_LimitBelowOneRunsSequentially(t *testing.T) {
	var inflight, peak atomic.Int32

	_, err := RunWithConcurrency(context.Background(), []int{1, 2, 3}, func(_ context.Context, n int) (int, error) {
		cur := inflight.Add(1)
		if cur > peak.Load() {
			peak.Store(cur)
		}
		time.Sleep(5 * time.Millisecond)
		inflight.Add(-1)
		return n, nil
	}, 0)
	if err != nil {
		t.Fatalf("RunWithConcurrency() error: %v", err)
	}
	if peak.Load() != 1 {
		t.Errorf("peak in-flight = %d, want 1", peak.Load())
	}
}
