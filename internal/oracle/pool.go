package oracle

import (
	"context"
	"sync"
)

// DefaultPoolWorkers bounds concurrent oracle consultations.
const DefaultPoolWorkers = 4

// Pool fans oracle consultations out over a bounded set of workers. Callers
// index into their own result slices, so output order always matches input
// order regardless of completion order.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultPoolWorkers
	}
	return &Pool{workers: workers}
}

// Run invokes fn for each index in [0, n) with bounded concurrency. It stops
// scheduling new work once the context is canceled and returns the context
// error in that case; individual fn errors do not stop the batch, and the
// first one observed is returned.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}

	indexes := make(chan int)
	errs := make(chan error, n)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				if err := fn(ctx, i); err != nil {
					errs <- err
				}
			}
		}()
	}

	var canceled error
feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			canceled = ctx.Err()
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	close(errs)

	if canceled != nil {
		return canceled
	}
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
