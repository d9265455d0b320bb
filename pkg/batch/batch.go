package batch

import (
	"context"
	"time"
)

// Options controls chunking, pacing, and progress reporting for Process.
type Options struct {
	// Size is the number of items per chunk (minimum 1).
	Size int

	// Delay is the pause inserted between consecutive chunks. No delay
	// follows the last chunk.
	Delay time.Duration

	// Concurrency bounds in-flight processor calls within a chunk.
	// Values <= 1 process the chunk sequentially.
	Concurrency int

	// OnProgress, when non-nil, is invoked after each chunk completes
	// (including the last) with the cumulative number of processed items
	// and the total item count.
	OnProgress func(completed, total int)
}

// Process partitions items, in original order, into consecutive chunks
// of Size and runs processor over each chunk. The processor receives the
// item's global index in the original sequence; indices are contiguous
// and monotonically increasing across chunk boundaries. The returned
// slice has the same order as items. The first processor error aborts
// the whole call.
func Process[T, R any](ctx context.Context, items []T, processor func(ctx context.Context, item T, index int) (R, error), opts Options) ([]R, error) {
	size := opts.Size
	if size < 1 {
		size = 1
	}

	total := len(items)
	results := make([]R, 0, total)

	for start := 0; start < total; start += size {
		end := min(start+size, total)

		chunk, err := processChunk(ctx, items, start, end, processor, opts.Concurrency)
		if err != nil {
			return nil, err
		}
		results = append(results, chunk...)

		if opts.OnProgress != nil {
			opts.OnProgress(len(results), total)
		}

		if end < total {
			if err := sleep(ctx, opts.Delay); err != nil {
				return nil, err
			}
		}
	}

	return results, nil
}

// processChunk runs processor over items[start:end], concurrently when
// limit > 1, passing each item its global index.
func processChunk[T, R any](ctx context.Context, items []T, start, end int, processor func(ctx context.Context, item T, index int) (R, error), limit int) ([]R, error) {
	if limit > 1 {
		indices := make([]int, end-start)
		for j := range indices {
			indices[j] = start + j
		}
		return RunWithConcurrency(ctx, indices, func(ctx context.Context, i int) (R, error) {
			return processor(ctx, items[i], i)
		}, limit)
	}

	results := make([]R, 0, end-start)
	for i := start; i < end; i++ {
		r, err := processor(ctx, items[i], i)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// sleep blocks for d or until ctx is done. Non-positive durations
// return immediately.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
