// Package pool runs independent tasks on a bounded worker pool.
//
// Workers share no mutable state. Cancelling the context stops dispatching
// new tasks and the results of every task that completed are still returned.
package pool

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task is one independent unit of work
type Task[T any] func(ctx context.Context) (T, error)

// Result pairs a task's position in the input with its outcome
type Result[T any] struct {
	Index int
	Value T
	Err   error
}

// Run executes tasks with at most limit in flight. It never stops on a task
// error; failures are reported per Result. Results are ordered by task index
// and contain only tasks that ran to completion. The returned error is
// ctx.Err() when the context was cancelled, nil otherwise.
func Run[T any](ctx context.Context, limit int, tasks []Task[T]) ([]Result[T], error) {
	if limit <= 0 {
		limit = 1
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)

	var (
		mu      sync.Mutex
		results = make([]*Result[T], len(tasks))
	)

	for i, task := range tasks {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			value, err := task(ctx)
			mu.Lock()
			results[i] = &Result[T]{Index: i, Value: value, Err: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Result[T], 0, len(tasks))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, ctx.Err()
}
