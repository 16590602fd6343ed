package relay

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cookierelay/cookierelay-go/pkg/cookies"
	"github.com/cookierelay/cookierelay-go/pkg/log"
	"github.com/cookierelay/cookierelay-go/pkg/taskrunner"
	"github.com/cookierelay/cookierelay-go/pkg/weakref"
)

var errResourceStopped = errors.New("resource runner stopped")

// back is the resource half of a subscription. It is created on the
// consumer runner but from then on only touched on the resource runner,
// where it is also destroyed.
type back struct {
	key      Key
	source   ChangeSource
	resource taskrunner.Runner
	delivery taskrunner.Runner
	front    weakref.Ref[front]
	state    *lifecycle
	trace    *tracer
	logger   *slog.Logger

	ref *taskrunner.RefCounted
	reg Unregisterer
}

func newBack(ctx context.Context, source ChangeSource, resource taskrunner.Runner, key Key,
	front weakref.Ref[front], delivery taskrunner.Runner, state *lifecycle, trace *tracer, logger *slog.Logger) *back {
	b := &back{
		key:      key,
		source:   source,
		resource: resource,
		delivery: delivery,
		front:    front,
		state:    state,
		trace:    trace,
		logger:   logger,
	}
	b.ref = taskrunner.NewRefCounted(resource, b.destroy)

	state.advance(ctx, log.SideConsumer, StateSubscribing, "")

	// The subscribe task holds its own reference until it has run.
	b.ref.AddRef()
	if !resource.PostTask(func(ctx context.Context) {
		b.subscribe(ctx)
		b.ref.Release(ctx)
	}) {
		logger.Warn("resource runner stopped, subscription will never be active",
			slog.String("runner", resource.Name()))
		trace.error(ctx, log.SideConsumer, errResourceStopped, "subscribe")
	}
	return b
}

// subscribe registers with the source unless the consumer already let go.
func (b *back) subscribe(ctx context.Context) {
	taskrunner.AssertOn(ctx, b.resource, "relay.back.subscribe")
	if !b.state.advance(ctx, log.SideResource, StateActive, "") {
		b.logger.Debug("front gone before registration, not subscribing")
		return
	}

	switch b.key.Kind {
	case KindByCookie:
		b.reg = b.source.AddCallbackForCookie(ctx, b.key.Identity, b.key.Name, func(ch cookies.Change) {
			b.onChanged(ctx, ch)
		})
	case KindByURL:
		b.reg = b.source.AddCallbackForURL(ctx, b.key.Identity, func(ch cookies.Change) {
			b.onChanged(ctx, ch)
		})
	default:
		panic("relay: unsupported kind " + b.key.Kind.String())
	}
}

// onChanged runs on the resource runner for every matching change and
// forwards it to the consumer runner.
func (b *back) onChanged(ctx context.Context, ch cookies.Change) {
	b.trace.notify(ctx, log.SideResource, ch, false)

	ref, trace := b.front, b.trace
	posted := b.delivery.PostTask(func(ctx context.Context) {
		f, ok := ref.Get()
		if !ok {
			trace.drop(ctx, log.SideConsumer, log.DropConsumerGone, ch)
			return
		}
		f.onChanged(ctx, ch)
		trace.notify(ctx, log.SideConsumer, ch, true)
	})
	if !posted {
		b.logger.Debug("consumer runner stopped, dropping change",
			slog.String("cookie", ch.Cookie.Name),
			slog.String("cause", ch.Cause.String()))
		b.trace.drop(ctx, log.SideResource, log.DropRunnerStopped, ch)
	}
}

// destroy runs on the resource runner once the last reference is gone.
func (b *back) destroy(ctx context.Context) {
	taskrunner.AssertOn(ctx, b.resource, "relay.back.destroy")
	if b.reg != nil {
		b.reg.Unregister()
		b.reg = nil
	}
	b.state.advance(ctx, log.SideResource, StateDestroyed, "")
}
