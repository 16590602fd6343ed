package log

import "time"

// Event is a relay trace event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SubscriptionID identifies the subscription (UUID).
	SubscriptionID string `cbor:"2,keyasint"`

	// Side of the relay that produced the event.
	Side Side `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// Runner is the name of the runner the event was produced on.
	Runner string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Key         *KeyEvent         `cbor:"10,keyasint,omitempty"` // Subscribe
	Change      *ChangeEvent      `cbor:"11,keyasint,omitempty"` // Notify
	Drop        *DropEvent        `cbor:"12,keyasint,omitempty"` // Drop
	StateChange *StateChangeEvent `cbor:"13,keyasint,omitempty"` // State
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Error
}

// Side indicates which side of the relay produced an event.
type Side uint8

const (
	// SideConsumer is the runner that subscribed.
	SideConsumer Side = 0
	// SideResource is the runner that owns the cookie store.
	SideResource Side = 1
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideConsumer:
		return "CONSUMER"
	case SideResource:
		return "RESOURCE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategorySubscribe records a subscription request.
	CategorySubscribe Category = 0
	// CategoryNotify records a change forwarded or delivered.
	CategoryNotify Category = 1
	// CategoryDrop records a change that was not delivered.
	CategoryDrop Category = 2
	// CategoryState records a lifecycle transition.
	CategoryState Category = 3
	// CategoryError records an error.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySubscribe:
		return "SUBSCRIBE"
	case CategoryNotify:
		return "NOTIFY"
	case CategoryDrop:
		return "DROP"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// KeyEvent describes what a subscription watches.
type KeyEvent struct {
	// Kind is the subscription kind (BY_COOKIE, BY_URL, ALL_CHANGES).
	Kind string `cbor:"1,keyasint"`

	// Identity is the watched URL (empty for all changes).
	Identity string `cbor:"2,keyasint,omitempty"`

	// Name is the watched cookie name (BY_COOKIE only).
	Name string `cbor:"3,keyasint,omitempty"`
}

// ChangeEvent describes a cookie change.
type ChangeEvent struct {
	// Name is the cookie name.
	Name string `cbor:"1,keyasint"`

	// Domain is the cookie domain.
	Domain string `cbor:"2,keyasint"`

	// Path is the cookie path.
	Path string `cbor:"3,keyasint"`

	// Cause is the change cause (INSERTED, EXPLICIT, ...).
	Cause string `cbor:"4,keyasint"`

	// Delivered is set on the consumer side once the callback ran.
	Delivered bool `cbor:"5,keyasint,omitempty"`
}

// DropEvent describes a change that was discarded.
type DropEvent struct {
	// Reason the change was dropped.
	Reason DropReason `cbor:"1,keyasint"`

	// Change that was dropped.
	Change ChangeEvent `cbor:"2,keyasint"`
}

// DropReason explains why a change was not delivered.
type DropReason uint8

const (
	// DropConsumerGone means the subscription was cancelled before the
	// change reached it.
	DropConsumerGone DropReason = 0
	// DropRunnerStopped means the consumer runner no longer accepts tasks.
	DropRunnerStopped DropReason = 1
)

// String returns the drop reason name.
func (d DropReason) String() string {
	switch d {
	case DropConsumerGone:
		return "CONSUMER_GONE"
	case DropRunnerStopped:
		return "RUNNER_STOPPED"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a relay lifecycle transition.
type StateChangeEvent struct {
	// OldState is the previous state.
	OldState string `cbor:"1,keyasint"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures an error.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
