package relay

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cookierelay/cookierelay-go/pkg/log"
)

// State is the lifecycle state of a subscription.
// States only move forward.
type State int32

const (
	// StateCreated is a subscription whose back has not been created yet.
	StateCreated State = iota

	// StateSubscribing means the back's registration is queued on the
	// resource runner.
	StateSubscribing

	// StateActive means the back is registered with the source.
	StateActive

	// StateUnsubscribing means the consumer has let go and the back is
	// waiting to be destroyed on the resource runner.
	StateUnsubscribing

	// StateDestroyed means the back has unregistered and been destroyed.
	StateDestroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateSubscribing:
		return "SUBSCRIBING"
	case StateActive:
		return "ACTIVE"
	case StateUnsubscribing:
		return "UNSUBSCRIBING"
	case StateDestroyed:
		return "DESTROYED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// lifecycle is shared by a front and its back. It is the only state the two
// sides both write, so it is atomic.
type lifecycle struct {
	v     atomic.Int32
	trace *tracer
}

func newLifecycle(trace *tracer) *lifecycle {
	return &lifecycle{trace: trace}
}

func (l *lifecycle) load() State {
	return State(l.v.Load())
}

// advance moves to next if that is forward of the current state. It returns
// false, changing nothing, if the lifecycle is already at or past next.
func (l *lifecycle) advance(ctx context.Context, side log.Side, next State, reason string) bool {
	for {
		cur := State(l.v.Load())
		if cur >= next {
			return false
		}
		if l.v.CompareAndSwap(int32(cur), int32(next)) {
			l.trace.state(ctx, side, cur, next, reason)
			return true
		}
	}
}
