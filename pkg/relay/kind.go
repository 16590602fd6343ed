package relay

import (
	"fmt"

	"github.com/cookierelay/cookierelay-go/pkg/cookies"
)

// Kind selects what a subscription watches.
type Kind uint8

const (
	// KindByCookie watches one cookie name visible to an identity.
	KindByCookie Kind = iota

	// KindByURL watches every cookie visible to an identity.
	KindByURL

	// KindAllChanges watches the whole jar. The relay does not support it.
	KindAllChanges
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindByCookie:
		return "BY_COOKIE"
	case KindByURL:
		return "BY_URL"
	case KindAllChanges:
		return "ALL_CHANGES"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Key describes a subscription.
type Key struct {
	Kind     Kind
	Identity cookies.Identity

	// Name is the cookie name; only used by KindByCookie.
	Name string
}

// Validate checks that the relay can serve the key.
func (k Key) Validate() error {
	switch k.Kind {
	case KindByCookie:
		if k.Name == "" {
			return ErrMissingName
		}
	case KindByURL:
	case KindAllChanges:
		return ErrNotImplemented
	default:
		return fmt.Errorf("relay: unknown kind %d", uint8(k.Kind))
	}
	if k.Identity.IsZero() {
		return fmt.Errorf("relay: %w: empty", cookies.ErrInvalidIdentity)
	}
	return nil
}

// String formats the key for logs.
func (k Key) String() string {
	switch k.Kind {
	case KindByCookie:
		return fmt.Sprintf("%s %s %q", k.Kind, k.Identity, k.Name)
	case KindByURL:
		return fmt.Sprintf("%s %s", k.Kind, k.Identity)
	default:
		return k.Kind.String()
	}
}
