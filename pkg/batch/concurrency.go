package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RunWithConcurrency executes worker over items with at most limit calls
// in flight. As each call finishes the next queued item is admitted,
// regardless of finishing order. Results are positionally ordered:
// results[i] corresponds to items[i]. Empty input returns an empty,
// non-nil slice without invoking the worker. A limit below 1 runs
// sequentially.
//
// A single worker failure is fatal to the whole call: admission stops,
// in-flight workers see a cancelled context, the first error is returned,
// and completed results are discarded.
func RunWithConcurrency[T, R any](ctx context.Context, items []T, worker func(ctx context.Context, item T) (R, error), limit int) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}
	if limit < 1 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		i, item := i, item
		// Stop admitting once a worker has failed.
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := worker(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
