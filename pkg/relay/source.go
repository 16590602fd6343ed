package relay

import (
	"context"

	"github.com/cookierelay/cookierelay-go/pkg/cookies"
)

// Unregisterer cancels a registration made with a ChangeSource.
type Unregisterer interface {
	// Unregister stops notifications. It must be idempotent.
	Unregister()
}

// ChangeSource is the thread-affine change registry the back subscribes to.
// Every method is called on the resource runner, and callbacks are expected
// to run there too.
type ChangeSource interface {
	// AddCallbackForCookie registers cb for changes to the named cookie
	// visible to id.
	AddCallbackForCookie(ctx context.Context, id cookies.Identity, name string, cb cookies.ChangeCallback) Unregisterer

	// AddCallbackForURL registers cb for changes to any cookie visible to id.
	AddCallbackForURL(ctx context.Context, id cookies.Identity, cb cookies.ChangeCallback) Unregisterer
}

// RegistrySource adapts a cookies.Registry to ChangeSource.
type RegistrySource struct {
	registry *cookies.Registry
}

// NewRegistrySource wraps registry.
func NewRegistrySource(registry *cookies.Registry) *RegistrySource {
	return &RegistrySource{registry: registry}
}

// AddCallbackForCookie implements ChangeSource.
func (s *RegistrySource) AddCallbackForCookie(ctx context.Context, id cookies.Identity, name string, cb cookies.ChangeCallback) Unregisterer {
	return s.registry.AddCallbackForCookie(ctx, id, name, cb)
}

// AddCallbackForURL implements ChangeSource.
func (s *RegistrySource) AddCallbackForURL(ctx context.Context, id cookies.Identity, cb cookies.ChangeCallback) Unregisterer {
	return s.registry.AddCallbackForURL(ctx, id, cb)
}

// Compile-time interface satisfaction check.
var _ ChangeSource = (*RegistrySource)(nil)
