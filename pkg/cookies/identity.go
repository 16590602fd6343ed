package cookies

import (
	"fmt"
	"net/url"
	"strings"
)

// Identity is the resource identity a subscription watches: the URL whose
// visible cookies are of interest.
type Identity struct {
	Scheme string
	Host   string
	Path   string
}

// ParseIdentity parses an absolute http(s) URL or a bare host name.
// Bare hosts default to https and path "/".
func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Identity{}, fmt.Errorf("%w: empty", ErrInvalidIdentity)
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidIdentity, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return Identity{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidIdentity, u.Scheme)
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return Identity{}, fmt.Errorf("%w: missing host in %q", ErrInvalidIdentity, s)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	return Identity{Scheme: scheme, Host: host, Path: path}, nil
}

// MustParseIdentity is like ParseIdentity but panics on error.
// Intended for tests and constants.
func MustParseIdentity(s string) Identity {
	id, err := ParseIdentity(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Secure reports whether the identity uses a secure scheme.
func (id Identity) Secure() bool {
	return id.Scheme == "https"
}

// IsZero reports whether the identity is unset.
func (id Identity) IsZero() bool {
	return id.Host == ""
}

// String returns the identity as a URL.
func (id Identity) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Scheme + "://" + id.Host + id.Path
}

// domainMatch implements RFC 6265 section 5.1.3 for a canonical domain
// (lower case, no leading dot).
func domainMatch(host, domain string) bool {
	if host == domain {
		return true
	}
	return strings.HasSuffix(host, "."+domain)
}

// pathMatch implements RFC 6265 section 5.1.4.
func pathMatch(requestPath, cookiePath string) bool {
	if requestPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(requestPath, cookiePath) {
		return false
	}
	if strings.HasSuffix(cookiePath, "/") {
		return true
	}
	return requestPath[len(cookiePath)] == '/'
}

// defaultPath computes the default cookie path for a request path.
func defaultPath(requestPath string) string {
	if requestPath == "" || requestPath[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(requestPath, "/")
	if i == 0 {
		return "/"
	}
	return requestPath[:i]
}
