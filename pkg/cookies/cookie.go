package cookies

import "time"

// Cookie is a canonical cookie as held by the Store.
// CBOR encoding uses integer keys for compact snapshots.
type Cookie struct {
	// Name is the cookie name. Names are case sensitive.
	Name string `cbor:"1,keyasint"`

	// Value is the cookie value.
	Value string `cbor:"2,keyasint"`

	// Domain is the canonical domain, lower case without a leading dot.
	Domain string `cbor:"3,keyasint"`

	// Path is the cookie path; always starts with "/".
	Path string `cbor:"4,keyasint"`

	// Expires is when the cookie expires. Zero means a session cookie.
	Expires time.Time `cbor:"5,keyasint,omitempty"`

	// Created is when the cookie was first stored. Overwrites keep it.
	Created time.Time `cbor:"6,keyasint"`

	// Secure restricts the cookie to secure identities.
	Secure bool `cbor:"7,keyasint,omitempty"`

	// HTTPOnly hides the cookie from script access.
	HTTPOnly bool `cbor:"8,keyasint,omitempty"`

	// HostOnly restricts the cookie to exactly Domain (no subdomains).
	HostOnly bool `cbor:"9,keyasint,omitempty"`
}

// IncludedFor reports whether the cookie is visible to id.
// Expiry is not considered.
func (c Cookie) IncludedFor(id Identity) bool {
	if c.HostOnly {
		if id.Host != c.Domain {
			return false
		}
	} else if !domainMatch(id.Host, c.Domain) {
		return false
	}
	if !pathMatch(id.Path, c.Path) {
		return false
	}
	if c.Secure && !id.Secure() {
		return false
	}
	return true
}

// Expired reports whether the cookie has expired at now.
func (c Cookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !now.Before(c.Expires)
}

// IsSession reports whether the cookie has no expiry.
func (c Cookie) IsSession() bool {
	return c.Expires.IsZero()
}

// key identifies a cookie slot in the jar. A host-only cookie and a domain
// cookie for the same domain are different cookies.
type key struct {
	domain   string
	hostOnly bool
	path     string
	name     string
}

func (c Cookie) key() key {
	return key{domain: c.Domain, hostOnly: c.HostOnly, path: c.Path, name: c.Name}
}

// ChangeCause describes why a cookie changed.
type ChangeCause uint8

const (
	// CauseInserted indicates a cookie was added to the jar.
	CauseInserted ChangeCause = iota
	// CauseExplicit indicates a cookie was deleted on request.
	CauseExplicit
	// CauseUnknownDeletion indicates a deletion whose cause is not known.
	CauseUnknownDeletion
	// CauseOverwrite indicates a cookie was replaced by a newer one.
	CauseOverwrite
	// CauseExpired indicates a cookie was removed because it expired.
	CauseExpired
	// CauseEvicted indicates a cookie was removed to stay within limits.
	CauseEvicted
	// CauseExpiredOverwrite indicates a cookie was replaced by an already
	// expired cookie, which deletes it.
	CauseExpiredOverwrite
)

// String returns the cause name.
func (c ChangeCause) String() string {
	switch c {
	case CauseInserted:
		return "INSERTED"
	case CauseExplicit:
		return "EXPLICIT"
	case CauseUnknownDeletion:
		return "UNKNOWN_DELETION"
	case CauseOverwrite:
		return "OVERWRITE"
	case CauseExpired:
		return "EXPIRED"
	case CauseEvicted:
		return "EVICTED"
	case CauseExpiredOverwrite:
		return "EXPIRED_OVERWRITE"
	default:
		return "UNKNOWN"
	}
}

// IsDeletion reports whether the cause removed the cookie from the jar.
func (c ChangeCause) IsDeletion() bool {
	return c != CauseInserted
}

// Change is a single change notification. It is a value: each receiver gets
// its own copy of the cookie.
type Change struct {
	Cookie Cookie
	Cause  ChangeCause
}

// ChangeCallback receives change notifications.
type ChangeCallback func(Change)
