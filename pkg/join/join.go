// Package join runs independent tasks concurrently and waits for all of them,
// keeping every task's result. Unlike a plain errgroup.WithContext, one failing
// task never cancels its siblings.
package join

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of work run by All.
type Task[T any] func(ctx context.Context) (T, error)

// Result holds the outcome of one task. Index matches the task's position.
type Result[T any] struct {
	Value T
	Err   error
}

// All runs every task concurrently and returns their results in task order.
// A panicking task is reported as an error in its own slot.
func All[T any](ctx context.Context, tasks ...Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))

	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					results[i] = Result[T]{Err: fmt.Errorf("task %d panicked: %v", i, r)}
				}
			}()
			v, err := task(ctx)
			results[i] = Result[T]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Run runs side-effecting tasks concurrently and returns one error slot per
// task, nil where the task succeeded.
func Run(ctx context.Context, tasks ...func(context.Context) error) []error {
	wrapped := make([]Task[struct{}], len(tasks))
	for i, task := range tasks {
		wrapped[i] = func(ctx context.Context) (struct{}, error) {
			return struct{}{}, task(ctx)
		}
	}

	results := All(ctx, wrapped...)
	errs := make([]error, len(results))
	for i, r := range results {
		errs[i] = r.Err
	}
	return errs
}
