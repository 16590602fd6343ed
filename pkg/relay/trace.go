package relay

import (
	"context"
	"time"

	"github.com/cookierelay/cookierelay-go/pkg/cookies"
	"github.com/cookierelay/cookierelay-go/pkg/log"
	"github.com/cookierelay/cookierelay-go/pkg/taskrunner"
)

// tracer emits trace events for one subscription. A nil now uses time.Now.
type tracer struct {
	logger log.Logger
	subID  string
	now    func() time.Time
}

func (t *tracer) emit(ctx context.Context, side log.Side, cat log.Category, fill func(*log.Event)) {
	if t == nil || t.logger == nil {
		return
	}
	now := t.now
	if now == nil {
		now = time.Now
	}
	e := log.Event{
		Timestamp:      now(),
		SubscriptionID: t.subID,
		Side:           side,
		Category:       cat,
	}
	if r := taskrunner.Current(ctx); r != nil {
		e.Runner = r.Name()
	}
	fill(&e)
	t.logger.Log(e)
}

func (t *tracer) subscribe(ctx context.Context, key Key) {
	t.emit(ctx, log.SideConsumer, log.CategorySubscribe, func(e *log.Event) {
		e.Key = &log.KeyEvent{Kind: key.Kind.String(), Name: key.Name}
		if !key.Identity.IsZero() {
			e.Key.Identity = key.Identity.String()
		}
	})
}

func (t *tracer) state(ctx context.Context, side log.Side, from, to State, reason string) {
	t.emit(ctx, side, log.CategoryState, func(e *log.Event) {
		e.StateChange = &log.StateChangeEvent{
			OldState: from.String(),
			NewState: to.String(),
			Reason:   reason,
		}
	})
}

func (t *tracer) notify(ctx context.Context, side log.Side, ch cookies.Change, delivered bool) {
	t.emit(ctx, side, log.CategoryNotify, func(e *log.Event) {
		c := changeEvent(ch)
		c.Delivered = delivered
		e.Change = &c
	})
}

func (t *tracer) drop(ctx context.Context, side log.Side, reason log.DropReason, ch cookies.Change) {
	t.emit(ctx, side, log.CategoryDrop, func(e *log.Event) {
		e.Drop = &log.DropEvent{Reason: reason, Change: changeEvent(ch)}
	})
}

func (t *tracer) error(ctx context.Context, side log.Side, err error, op string) {
	t.emit(ctx, side, log.CategoryError, func(e *log.Event) {
		e.Error = &log.ErrorEventData{Message: err.Error(), Context: op}
	})
}

func changeEvent(ch cookies.Change) log.ChangeEvent {
	return log.ChangeEvent{
		Name:   ch.Cookie.Name,
		Domain: ch.Cookie.Domain,
		Path:   ch.Cookie.Path,
		Cause:  ch.Cause.String(),
	}
}
