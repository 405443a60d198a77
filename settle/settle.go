// Package settle runs a set of independent tasks concurrently and collects
// one result per task, success or failure. Unlike errgroup, a failing task
// never cancels or masks its siblings; callers decide what a partial outcome
// means.
package settle

import (
	"context"
	"fmt"
	"sync"
)

// Result is the settled outcome of a single task.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the task settled without an error.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Task is a unit of work settled by All.
type Task[T any] func(ctx context.Context) (T, error)

// All runs every task on its own goroutine and waits for all of them.
// The returned slice holds exactly one Result per task, in task order.
// A panicking task settles as an error instead of crashing the process.
func All[T any](ctx context.Context, tasks []Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))

	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)

		go func(i int, task Task[T]) {
			defer wg.Done()

			defer func() {
				if r := recover(); r != nil {
					results[i].Err = fmt.Errorf("task %d panicked: %v", i, r)
				}
			}()

			results[i].Value, results[i].Err = task(ctx)
		}(i, task)
	}

	wg.Wait()

	return results
}
