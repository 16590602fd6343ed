package taskrunner

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// RefCounted destroys an object on its owner runner once every reference has
// been released.
//
// References can be added from any goroutine. Releases requested off the
// owner are posted to it, so the count is only ever decremented by code
// running on the owner and the final decrement calls destroy there.
type RefCounted struct {
	owner   Runner
	destroy Task
	refs    atomic.Int32
}

// NewRefCounted returns a RefCounted holding one reference.
func NewRefCounted(owner Runner, destroy Task) *RefCounted {
	r := &RefCounted{
		owner:   owner,
		destroy: destroy,
	}
	r.refs.Store(1)
	return r
}

// Owner returns the runner the object is destroyed on.
func (r *RefCounted) Owner() Runner {
	return r.owner
}

// AddRef takes another reference.
// It panics if the object has already been released.
func (r *RefCounted) AddRef() {
	if n := r.refs.Add(1); n <= 1 {
		panic(fmt.Sprintf("AddRef on released object (refs=%d)", n-1))
	}
}

// Release drops a reference. When ctx is running on the owner the count is
// decremented immediately, otherwise the decrement is posted to the owner.
func (r *RefCounted) Release(ctx context.Context) {
	if r.owner.RunsTasksInCurrentSequence(ctx) {
		r.release(ctx)
		return
	}
	r.ReleaseSoon()
}

// ReleaseSoon drops a reference by always posting the decrement to the owner,
// even when the caller is already on it.
func (r *RefCounted) ReleaseSoon() {
	if !r.owner.PostTask(r.release) {
		slog.Warn("owner runner stopped, object not destroyed",
			slog.String("runner", r.owner.Name()))
	}
}

// Refs returns the current reference count.
func (r *RefCounted) Refs() int32 {
	return r.refs.Load()
}

func (r *RefCounted) release(ctx context.Context) {
	n := r.refs.Add(-1)
	switch {
	case n == 0:
		r.destroy(ctx)
	case n < 0:
		panic("Release called more times than AddRef")
	}
}
