package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// fanOut runs fn for every item concurrently and returns the results in input
// order. Each goroutine writes only its own slot, so no locking is needed.
// A limit of zero or less runs every item at once.
func fanOut[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) R) []R {
	results := make([]R, len(items))
	var eg errgroup.Group
	if limit > 0 {
		eg.SetLimit(limit)
	}
	for i, item := range items {
		eg.Go(func() error {
			results[i] = fn(ctx, item)
			return nil
		})
	}
	_ = eg.Wait() // fn cannot fail; errors travel inside R.
	return results
}
