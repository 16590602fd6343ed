package relay

import (
	"context"

	"github.com/google/uuid"

	"github.com/cookierelay/cookierelay-go/pkg/callbacklist"
	"github.com/cookierelay/cookierelay-go/pkg/taskrunner"
)

// Subscription is the handle returned to the subscriber. Unsubscribe cancels
// it at once. A handle that becomes unreachable without Unsubscribe is
// cancelled on the consumer runner some time after the garbage collector
// notices; a callback that refers to its own Subscription keeps it alive.
type Subscription struct {
	id    uuid.UUID
	key   Key
	front *front
	reg   *callbacklist.Registration
}

// ID returns the identifier used in trace events.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Key returns what the subscription watches.
func (s *Subscription) Key() Key {
	return s.key
}

// State returns the current lifecycle state.
func (s *Subscription) State() State {
	return s.front.state.load()
}

// Unsubscribe cancels the subscription. It must be called on the runner that
// subscribed and does not wait for the resource runner. Once it returns the
// callback is not invoked again, even for changes already on their way.
// Calling it more than once, or from inside the callback, is fine.
func (s *Subscription) Unsubscribe(ctx context.Context) {
	if s == nil {
		return
	}
	taskrunner.AssertOn(ctx, s.front.runner, "relay.Subscription.Unsubscribe")
	s.front.unsubscribe(ctx, s.reg)
}

// droppedSubscription is what the cleanup of a collected Subscription
// needs. It must not refer to the Subscription itself.
type droppedSubscription struct {
	front *front
	reg   *callbacklist.Registration
}

// releaseDropped runs on the cleanup goroutine after a Subscription was
// collected and unsubscribes it from the consumer runner.
func releaseDropped(d droppedSubscription) {
	f, reg := d.front, d.reg
	f.runner.PostTask(func(ctx context.Context) {
		if f.callbacks.Empty() {
			return
		}
		f.logger.DebugContext(ctx, "subscription handle dropped without Unsubscribe")
		f.unsubscribe(ctx, reg)
	})
}
