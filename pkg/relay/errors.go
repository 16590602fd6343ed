package relay

import "errors"

// Relay errors.
var (
	// ErrNotImplemented is returned for subscription kinds the relay does
	// not support.
	ErrNotImplemented = errors.New("relay: not implemented")

	// ErrMissingName is returned when a by-cookie subscription has no name.
	ErrMissingName = errors.New("relay: cookie name required")

	// ErrNoRunner is returned when the caller's context is not running on
	// any task runner, so there is nowhere to deliver changes.
	ErrNoRunner = errors.New("relay: caller is not running on a task runner")
)
