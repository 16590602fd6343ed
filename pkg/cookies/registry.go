package cookies

import (
	"context"

	"github.com/cookierelay/cookierelay-go/pkg/callbacklist"
	"github.com/cookierelay/cookierelay-go/pkg/taskrunner"
)

// Registry dispatches change notifications for one Store.
// It is bound to the store runner: registration and dispatch must happen in
// tasks on that runner.
type Registry struct {
	runner    taskrunner.Runner
	callbacks callbacklist.List[Change]
}

// Registration is a live registry callback.
type Registration struct {
	reg *callbacklist.Registration
}

// Unregister stops further notifications. It is idempotent and may be called
// from inside the callback itself.
func (r *Registration) Unregister() {
	if r == nil {
		return
	}
	r.reg.Remove()
}

// NewRegistry creates a registry bound to runner.
func NewRegistry(runner taskrunner.Runner) *Registry {
	return &Registry{runner: runner}
}

// Runner returns the runner the registry is bound to.
func (r *Registry) Runner() taskrunner.Runner {
	return r.runner
}

// AddCallbackForCookie registers cb for changes to cookies named name that
// are visible to id.
func (r *Registry) AddCallbackForCookie(ctx context.Context, id Identity, name string, cb ChangeCallback) *Registration {
	taskrunner.AssertOn(ctx, r.runner, "cookies.Registry.AddCallbackForCookie")

	return r.add(func(ch Change) bool {
		return ch.Cookie.Name == name && ch.Cookie.IncludedFor(id)
	}, cb)
}

// AddCallbackForURL registers cb for changes to any cookie visible to id.
func (r *Registry) AddCallbackForURL(ctx context.Context, id Identity, cb ChangeCallback) *Registration {
	taskrunner.AssertOn(ctx, r.runner, "cookies.Registry.AddCallbackForURL")

	return r.add(func(ch Change) bool {
		return ch.Cookie.IncludedFor(id)
	}, cb)
}

// AddCallbackForAllChanges registers cb for every change in the jar.
func (r *Registry) AddCallbackForAllChanges(ctx context.Context, cb ChangeCallback) *Registration {
	taskrunner.AssertOn(ctx, r.runner, "cookies.Registry.AddCallbackForAllChanges")

	return r.add(nil, cb)
}

// DispatchChange delivers ch to every matching callback, synchronously and in
// registration order.
func (r *Registry) DispatchChange(ctx context.Context, ch Change) {
	taskrunner.AssertOn(ctx, r.runner, "cookies.Registry.DispatchChange")

	r.callbacks.Notify(ch)
}

// Count returns the number of live registrations.
func (r *Registry) Count() int {
	return r.callbacks.Len()
}

func (r *Registry) add(match func(Change) bool, cb ChangeCallback) *Registration {
	if cb == nil {
		panic("cookies: nil change callback")
	}

	reg := r.callbacks.Add(func(ch Change) {
		if match == nil || match(ch) {
			cb(ch)
		}
	})
	return &Registration{reg: reg}
}
