package pipeline

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of subproblems solved concurrently. Size defaults
// to GOMAXPROCS (which automaxprocs has already set to the container CPU
// quota in cmd/planner/main.go) when zero or negative.
type Pool struct {
	size int64
}

// New returns a worker pool sized to size, or GOMAXPROCS if size <= 0.
func New(size int) Pool {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return Pool{size: int64(size)}
}

// Run executes work(item) for every item in items on the pool, returning
// results in the same order as items. The first worker error cancels the
// group's context and Run returns that error; results for items that never
// ran are left as the zero value of R.
//
// Subproblems share no mutable state: each worker owns its own slice of
// the immutable input and writes exclusively to its own results[i] slot
// (spec.md §5 "Shared-resource policy").
func Run[T, R any](ctx context.Context, p Pool, items []T, work func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	sem := semaphore.NewWeighted(p.size)
	group, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for i, item := range items {
		i, item := i, item
		group.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			r, err := work(gctx, item)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = r
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
