package taskrunner

import (
	"context"
	"errors"
	"fmt"
)

// ErrStopped is returned when waiting on a runner that has been stopped.
var ErrStopped = errors.New("task runner stopped")

// Task is a unit of work posted to a Runner.
// The context carries the executing runner (see Current).
type Task func(ctx context.Context)

// Runner runs posted tasks sequentially in FIFO order.
type Runner interface {
	// PostTask queues task for execution. It returns false if the runner no
	// longer accepts tasks, in which case the task is dropped.
	PostTask(task Task) bool

	// RunsTasksInCurrentSequence reports whether ctx belongs to a task that
	// is currently running on this runner.
	RunsTasksInCurrentSequence(ctx context.Context) bool

	// Name returns the runner name used in logs.
	Name() string
}

type runnerKey struct{}

// WithRunner returns a context marked as executing on r.
func WithRunner(ctx context.Context, r Runner) context.Context {
	return context.WithValue(ctx, runnerKey{}, r)
}

// Current returns the runner executing the task that owns ctx.
// Returns nil if ctx is nil or was not produced by a runner.
func Current(ctx context.Context) Runner {
	if ctx == nil {
		return nil
	}
	if r, ok := ctx.Value(runnerKey{}).(Runner); ok {
		return r
	}
	return nil
}

// AssertOn panics unless ctx belongs to a task running on r.
// what names the caller in the panic message.
func AssertOn(ctx context.Context, r Runner, what string) {
	if r == nil || !r.RunsTasksInCurrentSequence(ctx) {
		cur := "none"
		if c := Current(ctx); c != nil {
			cur = c.Name()
		}
		want := "none"
		if r != nil {
			want = r.Name()
		}
		panic(fmt.Sprintf("%s called on runner %q, must run on %q", what, cur, want))
	}
}

// Call posts fn to r and waits for it to finish, returning its error.
// It is meant for callers outside any runner (command-line front ends, tests)
// and must not be used from a task on r itself.
func Call(ctx context.Context, r Runner, fn func(ctx context.Context) error) error {
	done := make(chan error, 1)
	if !r.PostTask(func(ctx context.Context) { done <- fn(ctx) }) {
		return ErrStopped
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
