package relay

import (
	"context"
	"log/slog"

	"github.com/cookierelay/cookierelay-go/pkg/callbacklist"
	"github.com/cookierelay/cookierelay-go/pkg/cookies"
	"github.com/cookierelay/cookierelay-go/pkg/log"
	"github.com/cookierelay/cookierelay-go/pkg/taskrunner"
	"github.com/cookierelay/cookierelay-go/pkg/weakref"
)

// front is the consumer half of a subscription. Everything except the
// lifecycle is confined to the consumer runner.
type front struct {
	d      *Dispatcher
	runner taskrunner.Runner
	state  *lifecycle
	trace  *tracer
	logger *slog.Logger

	callbacks  callbacklist.List[cookies.Change]
	weak       *weakref.Factory[front]
	back       *back
	subscribed bool

	// removing is the context of the unsubscribe in progress, handed to
	// teardown by the removal callback.
	removing context.Context
}

func newFront(ctx context.Context, d *Dispatcher, state *lifecycle, trace *tracer, logger *slog.Logger) *front {
	f := &front{
		d:      d,
		runner: taskrunner.Current(ctx),
		state:  state,
		trace:  trace,
		logger: logger,
	}
	f.weak = weakref.NewFactory(f)
	f.callbacks.SetRemovalCallback(func() { f.teardown(f.removing) })
	return f
}

// subscribe starts the back and registers cb. A front serves exactly one
// subscription; calling subscribe twice is a bug.
func (f *front) subscribe(ctx context.Context, key Key, cb cookies.ChangeCallback) *callbacklist.Registration {
	taskrunner.AssertOn(ctx, f.runner, "relay.front.subscribe")
	if f.subscribed {
		panic("relay: subscription front already subscribed")
	}
	if key.Kind == KindAllChanges {
		panic("relay: all-changes subscriptions cannot be relayed")
	}
	f.subscribed = true

	f.trace.subscribe(ctx, key)
	f.back = newBack(ctx, f.d.source, f.d.resource, key, f.weak.Ref(), f.runner, f.state, f.trace, f.logger)
	return f.callbacks.Add(cb)
}

// onChanged runs on the consumer runner for each change the back forwards.
func (f *front) onChanged(ctx context.Context, ch cookies.Change) {
	taskrunner.AssertOn(ctx, f.runner, "relay.front.onChanged")
	f.callbacks.Notify(ch)
}

// unsubscribe removes reg, tearing the front down in ctx.
func (f *front) unsubscribe(ctx context.Context, reg *callbacklist.Registration) {
	f.removing = ctx
	defer func() { f.removing = nil }()
	reg.Remove()
}

// teardown runs when the consumer callback is removed. Changes already
// posted by the back find the weak reference invalid and are dropped.
func (f *front) teardown(ctx context.Context) {
	if !f.callbacks.Empty() {
		return
	}
	f.state.advance(ctx, log.SideConsumer, StateUnsubscribing, "unsubscribed")
	f.weak.Invalidate()
	if f.back != nil {
		f.back.ref.ReleaseSoon()
		f.back = nil
	}
	f.logger.DebugContext(ctx, "subscription released")
}
