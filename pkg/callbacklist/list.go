// Package callbacklist implements an ordered list of callbacks that can be
// notified together and removed individually through their Registration.
//
// A List belongs to a single runner and is not safe for concurrent use.
package callbacklist

// List is an ordered set of callbacks taking a value of type T.
// The zero value is ready to use.
type List[T any] struct {
	entries   []*entry[T]
	live      int
	notifying int
	dirty     bool
	onRemoval func()
}

type entry[T any] struct {
	cb      func(T)
	removed bool
}

// Registration removes one callback from its List.
type Registration struct {
	remove func()
}

// Remove removes the callback. It is idempotent and safe to call from inside
// a callback during Notify; the removed callback is not invoked again.
func (r *Registration) Remove() {
	if r == nil || r.remove == nil {
		return
	}
	remove := r.remove
	r.remove = nil
	remove()
}

// Add appends cb and returns the registration that removes it.
func (l *List[T]) Add(cb func(T)) *Registration {
	if cb == nil {
		panic("callbacklist: nil callback")
	}

	e := &entry[T]{cb: cb}
	l.entries = append(l.entries, e)
	l.live++

	return &Registration{remove: func() { l.remove(e) }}
}

// SetRemovalCallback sets fn to run after every removal, once the list has
// been updated. Owners use it to tear themselves down when Empty.
func (l *List[T]) SetRemovalCallback(fn func()) {
	l.onRemoval = fn
}

// Notify calls every registered callback with v, in registration order.
// Callbacks added during Notify are not called until the next Notify.
func (l *List[T]) Notify(v T) {
	l.notifying++
	n := len(l.entries)
	for i := 0; i < n; i++ {
		if e := l.entries[i]; !e.removed {
			e.cb(v)
		}
	}
	l.notifying--

	if l.notifying == 0 && l.dirty {
		l.compact()
	}
}

// Len returns the number of registered callbacks.
func (l *List[T]) Len() int {
	return l.live
}

// Empty reports whether no callbacks are registered.
func (l *List[T]) Empty() bool {
	return l.live == 0
}

func (l *List[T]) remove(e *entry[T]) {
	if e.removed {
		return
	}
	e.removed = true
	e.cb = nil
	l.live--

	if l.notifying > 0 {
		l.dirty = true
	} else {
		l.compact()
	}

	if l.onRemoval != nil {
		l.onRemoval()
	}
}

func (l *List[T]) compact() {
	kept := l.entries[:0]
	for _, e := range l.entries {
		if !e.removed {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(l.entries); i++ {
		l.entries[i] = nil
	}
	l.entries = kept
	l.dirty = false
}
