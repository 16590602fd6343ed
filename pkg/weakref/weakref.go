// Package weakref provides explicitly invalidated weak references.
//
// Unlike the runtime's weak pointers, which clear when the garbage collector
// reclaims the referent, a Ref here turns invalid the moment its owner calls
// Invalidate. That lets an object that is logically destroyed (but still
// reachable from queued tasks) make every outstanding reference fail.
//
// Get is race-free from any goroutine. Using the returned pointer is only
// safe on the goroutine or runner that owns the referent and calls
// Invalidate, since that is what orders the check against destruction.
package weakref

import "sync/atomic"

// Factory hands out weak references to the object it was created for.
// The owner embeds or holds the Factory and calls Invalidate on teardown.
type Factory[T any] struct {
	p     *T
	alive *atomic.Bool
}

// NewFactory returns a Factory for p.
func NewFactory[T any](p *T) *Factory[T] {
	alive := new(atomic.Bool)
	alive.Store(true)
	return &Factory[T]{p: p, alive: alive}
}

// Ref returns a weak reference to the object.
// Refs taken after Invalidate are invalid as well.
func (f *Factory[T]) Ref() Ref[T] {
	return Ref[T]{p: f.p, alive: f.alive}
}

// Invalidate makes every Ref from this factory return false from Get.
// It is idempotent.
func (f *Factory[T]) Invalidate() {
	f.alive.Store(false)
}

// Valid reports whether refs from this factory still resolve.
func (f *Factory[T]) Valid() bool {
	return f.alive.Load()
}

// Ref is a weak reference. The zero value never resolves.
type Ref[T any] struct {
	p     *T
	alive *atomic.Bool
}

// Get returns the referent and true, or nil and false once the factory has
// been invalidated.
func (r Ref[T]) Get() (*T, bool) {
	if r.alive == nil || !r.alive.Load() {
		return nil, false
	}
	return r.p, true
}

// Valid reports whether Get would currently succeed.
func (r Ref[T]) Valid() bool {
	return r.alive != nil && r.alive.Load()
}
