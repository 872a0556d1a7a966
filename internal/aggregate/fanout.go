package aggregate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type indexed[T any] struct {
	i int
	v T
}

// fanOut runs task once per item and returns the results in input order.
// Tasks cannot fail; each hands its single result back over a channel and
// the merge happens after every task has finished. limit <= 0 starts one
// goroutine per item. If ctx ends before the merge, all results are dropped
// and ctx's error is returned.
func fanOut[In, Out any](ctx context.Context, limit int, items []In, task func(ctx context.Context, item In) Out) ([]Out, error) {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	results := make(chan indexed[Out], len(items))
	for i, item := range items {
		g.Go(func() error {
			var v Out
			if gctx.Err() == nil {
				v = task(gctx, item)
			}
			results <- indexed[Out]{i: i, v: v}
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]Out, len(items))
	for r := range results {
		out[r.i] = r.v
	}
	return out, nil
}
