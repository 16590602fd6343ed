package cookies

import "errors"

// Cookie store errors.
var (
	ErrInvalidIdentity     = errors.New("invalid identity")
	ErrInvalidCookie       = errors.New("invalid cookie")
	ErrDomainMismatch      = errors.New("cookie domain does not match identity")
	ErrInsecure            = errors.New("secure cookie requires a secure identity")
	ErrUnsupportedSnapshot = errors.New("unsupported snapshot version")
)
