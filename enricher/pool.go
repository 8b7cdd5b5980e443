package enricher

import (
	"context"
	"sync"
)

// MapOrdered applies fn to every item with at most workers goroutines and
// returns the results in input order. Each job carries its input index and
// writes to its own slot, so completion order never leaks into the output.
// This ordering guarantee is what keeps enrichment output aligned with the
// vector index rows built from it.
func MapOrdered[T, R any](ctx context.Context, items []T, workers int, fn func(ctx context.Context, i int, item T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = fn(ctx, i, items[i])
			}
		}()
	}
	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
