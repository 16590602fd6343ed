package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/cookierelay/cookierelay-go/pkg/cookies"
	"github.com/cookierelay/cookierelay-go/pkg/log"
	"github.com/cookierelay/cookierelay-go/pkg/taskrunner"
)

// Dispatcher hands out relayed subscriptions to a ChangeSource that lives on
// the resource runner. Its methods may be called from any runner; callbacks
// are delivered on the caller's runner.
type Dispatcher struct {
	source   ChangeSource
	resource taskrunner.Runner
	logger   *slog.Logger
	trace    log.Logger
	now      func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the operational logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithTraceLogger sets the relay trace logger. Defaults to log.NoopLogger.
func WithTraceLogger(logger log.Logger) Option {
	return func(d *Dispatcher) {
		d.trace = logger
	}
}

// WithClock sets the time source for trace timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// NewDispatcher creates a Dispatcher for source, which must only be used on
// resource.
func NewDispatcher(source ChangeSource, resource taskrunner.Runner, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		source:   source,
		resource: resource,
		logger:   slog.Default(),
		trace:    log.NoopLogger{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewStoreDispatcher creates a Dispatcher for the change registry of store.
func NewStoreDispatcher(store *cookies.Store, opts ...Option) *Dispatcher {
	return NewDispatcher(NewRegistrySource(store.Registry()), store.Runner(), opts...)
}

// AddCallbackForCookie subscribes cb to changes of the cookie called name
// that are visible to identity.
func (d *Dispatcher) AddCallbackForCookie(ctx context.Context, identity, name string, cb cookies.ChangeCallback) (*Subscription, error) {
	id, err := cookies.ParseIdentity(identity)
	if err != nil {
		return nil, fmt.Errorf("relay: %w", err)
	}
	return d.Subscribe(ctx, Key{Kind: KindByCookie, Identity: id, Name: name}, cb)
}

// AddCallbackForURL subscribes cb to changes of any cookie visible to
// identity.
func (d *Dispatcher) AddCallbackForURL(ctx context.Context, identity string, cb cookies.ChangeCallback) (*Subscription, error) {
	id, err := cookies.ParseIdentity(identity)
	if err != nil {
		return nil, fmt.Errorf("relay: %w", err)
	}
	return d.Subscribe(ctx, Key{Kind: KindByURL, Identity: id}, cb)
}

// AddCallbackForAllChanges is not supported by the relay and always returns
// ErrNotImplemented.
func (d *Dispatcher) AddCallbackForAllChanges(ctx context.Context, cb cookies.ChangeCallback) (*Subscription, error) {
	return d.Subscribe(ctx, Key{Kind: KindAllChanges}, cb)
}

// Subscribe subscribes cb to key. The caller's context must be running on a
// task runner, which is where cb will be called.
func (d *Dispatcher) Subscribe(ctx context.Context, key Key, cb cookies.ChangeCallback) (*Subscription, error) {
	if cb == nil {
		panic("relay: nil change callback")
	}

	if err := key.Validate(); err != nil {
		if errors.Is(err, ErrNotImplemented) {
			d.logger.Error("subscription kind not supported by relay",
				slog.String("kind", key.Kind.String()))
			t := &tracer{logger: d.trace, now: d.now}
			t.error(ctx, log.SideConsumer, err, "subscribe "+key.Kind.String())
		}
		return nil, err
	}
	if taskrunner.Current(ctx) == nil {
		return nil, ErrNoRunner
	}

	id := uuid.New()
	logger := d.logger.With(
		slog.String("sub_id", id.String()),
		slog.String("key", key.String()),
	)
	trace := &tracer{logger: d.trace, subID: id.String(), now: d.now}

	f := newFront(ctx, d, newLifecycle(trace), trace, logger)
	reg := f.subscribe(ctx, key, cb)
	logger.Debug("subscribed")

	sub := &Subscription{id: id, key: key, front: f, reg: reg}
	runtime.AddCleanup(sub, releaseDropped, droppedSubscription{front: f, reg: reg})
	return sub, nil
}
