package cookies

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cookierelay/cookierelay-go/pkg/taskrunner"
)

// DefaultMaxCookiesPerDomain is the per-domain limit applied when none is
// configured.
const DefaultMaxCookiesPerDomain = 180

// Store is an in-memory cookie jar bound to a single runner.
type Store struct {
	runner       taskrunner.Runner
	registry     *Registry
	cookies      map[key]Cookie
	now          func() time.Time
	maxPerDomain int
	logger       *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the time source. Defaults to time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithMaxCookiesPerDomain caps the cookies kept for one domain. Storing past
// the cap evicts the oldest cookie of that domain.
func WithMaxCookiesPerDomain(n int) StoreOption {
	return func(s *Store) {
		s.maxPerDomain = n
	}
}

// WithLogger sets the operational logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty jar bound to runner, with its own Registry.
func NewStore(runner taskrunner.Runner, opts ...StoreOption) *Store {
	s := &Store{
		runner:       runner,
		registry:     NewRegistry(runner),
		cookies:      make(map[key]Cookie),
		now:          time.Now,
		maxPerDomain: DefaultMaxCookiesPerDomain,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxPerDomain <= 0 {
		s.maxPerDomain = DefaultMaxCookiesPerDomain
	}
	return s
}

// Runner returns the runner the store lives on.
func (s *Store) Runner() taskrunner.Runner {
	return s.runner
}

// Registry returns the change registry for this store.
func (s *Store) Registry() *Registry {
	return s.registry
}

// SetCookie stores c as set by id.
//
// An empty Domain makes the cookie host-only for id's host; an empty or
// relative Path takes the default path of id. Replacing an existing cookie
// reports CauseOverwrite for the old one followed by CauseInserted for the new
// one. Storing an already expired cookie deletes any existing cookie with
// CauseExpiredOverwrite and inserts nothing.
func (s *Store) SetCookie(ctx context.Context, id Identity, c Cookie) error {
	taskrunner.AssertOn(ctx, s.runner, "cookies.Store.SetCookie")

	c, err := canonicalize(id, c)
	if err != nil {
		return err
	}

	now := s.now()
	c.Created = now

	k := c.key()
	old, exists := s.cookies[k]

	if c.Expired(now) {
		if exists {
			delete(s.cookies, k)
			s.dispatch(ctx, old, CauseExpiredOverwrite)
		}
		return nil
	}

	if exists {
		c.Created = old.Created
		delete(s.cookies, k)
		s.dispatch(ctx, old, CauseOverwrite)
	}

	s.cookies[k] = c
	s.dispatch(ctx, c, CauseInserted)

	s.enforceDomainLimit(ctx, c.Domain, k)
	return nil
}

// DeleteCookie deletes every cookie named name that is visible to id and
// returns how many were removed.
func (s *Store) DeleteCookie(ctx context.Context, id Identity, name string) int {
	taskrunner.AssertOn(ctx, s.runner, "cookies.Store.DeleteCookie")

	return s.deleteWhere(ctx, CauseExplicit, func(c Cookie) bool {
		return c.Name == name && c.IncludedFor(id)
	})
}

// DeleteAll empties the jar and returns how many cookies were removed.
func (s *Store) DeleteAll(ctx context.Context) int {
	taskrunner.AssertOn(ctx, s.runner, "cookies.Store.DeleteAll")

	return s.deleteWhere(ctx, CauseExplicit, func(Cookie) bool { return true })
}

// EvictExpired removes expired cookies and returns how many were removed.
func (s *Store) EvictExpired(ctx context.Context) int {
	taskrunner.AssertOn(ctx, s.runner, "cookies.Store.EvictExpired")

	now := s.now()
	n := s.deleteWhere(ctx, CauseExpired, func(c Cookie) bool { return c.Expired(now) })
	if n > 0 {
		s.logger.Debug("evicted expired cookies", slog.Int("count", n))
	}
	return n
}

// Cookies returns the unexpired cookies visible to id, longest path first and
// then oldest first.
func (s *Store) Cookies(ctx context.Context, id Identity) []Cookie {
	taskrunner.AssertOn(ctx, s.runner, "cookies.Store.Cookies")

	now := s.now()
	var out []Cookie
	for _, c := range s.cookies {
		if c.IncludedFor(id) && !c.Expired(now) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Path) != len(out[j].Path) {
			return len(out[i].Path) > len(out[j].Path)
		}
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// All returns every cookie in the jar ordered by domain, path and name.
func (s *Store) All(ctx context.Context) []Cookie {
	taskrunner.AssertOn(ctx, s.runner, "cookies.Store.All")

	return s.sorted(func(Cookie) bool { return true })
}

// Len returns the number of cookies in the jar.
func (s *Store) Len(ctx context.Context) int {
	taskrunner.AssertOn(ctx, s.runner, "cookies.Store.Len")

	return len(s.cookies)
}

// Restore loads previously saved cookies without reporting changes.
// Expired cookies are skipped. It returns how many were loaded.
func (s *Store) Restore(ctx context.Context, cookies []Cookie) int {
	taskrunner.AssertOn(ctx, s.runner, "cookies.Store.Restore")

	now := s.now()
	n := 0
	for _, c := range cookies {
		if c.Expired(now) || c.Name == "" || c.Domain == "" {
			continue
		}
		if c.Path == "" {
			c.Path = "/"
		}
		s.cookies[c.key()] = c
		n++
	}
	return n
}

func (s *Store) deleteWhere(ctx context.Context, cause ChangeCause, match func(Cookie) bool) int {
	victims := s.sorted(match)
	for _, c := range victims {
		delete(s.cookies, c.key())
		s.dispatch(ctx, c, cause)
	}
	return len(victims)
}

// enforceDomainLimit evicts the oldest cookies of domain until it is within
// the limit. The cookie stored under keep was just set and is never evicted.
func (s *Store) enforceDomainLimit(ctx context.Context, domain string, keep key) {
	inDomain := s.sorted(func(c Cookie) bool { return c.Domain == domain })
	excess := len(inDomain) - s.maxPerDomain
	if excess <= 0 {
		return
	}

	candidates := inDomain[:0]
	for _, c := range inDomain {
		if c.key() != keep {
			candidates = append(candidates, c)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Created.Before(candidates[j].Created)
	})
	for _, c := range candidates[:excess] {
		delete(s.cookies, c.key())
		s.dispatch(ctx, c, CauseEvicted)
	}
	s.logger.Debug("evicted cookies over domain limit",
		slog.String("domain", domain),
		slog.Int("count", excess))
}

func (s *Store) sorted(match func(Cookie) bool) []Cookie {
	var out []Cookie
	for _, c := range s.cookies {
		if match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Domain != b.Domain {
			return a.Domain < b.Domain
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Name < b.Name
	})
	return out
}

func (s *Store) dispatch(ctx context.Context, c Cookie, cause ChangeCause) {
	s.registry.DispatchChange(ctx, Change{Cookie: c, Cause: cause})
}

// canonicalize validates c against the identity that sets it and fills in
// the domain and path defaults.
func canonicalize(id Identity, c Cookie) (Cookie, error) {
	if id.IsZero() {
		return Cookie{}, fmt.Errorf("%w: empty identity", ErrInvalidIdentity)
	}
	if c.Name == "" {
		return Cookie{}, fmt.Errorf("%w: empty name", ErrInvalidCookie)
	}
	if strings.ContainsAny(c.Name, ";= \t") {
		return Cookie{}, fmt.Errorf("%w: illegal character in name %q", ErrInvalidCookie, c.Name)
	}

	if c.Domain == "" {
		c.Domain = id.Host
		c.HostOnly = true
	} else {
		d := strings.TrimPrefix(strings.ToLower(c.Domain), ".")
		if d == "" || !domainMatch(id.Host, d) {
			return Cookie{}, fmt.Errorf("%w: %q set by %q", ErrDomainMismatch, c.Domain, id.Host)
		}
		c.Domain = d
		c.HostOnly = false
	}

	if c.Path == "" || c.Path[0] != '/' {
		c.Path = defaultPath(id.Path)
	}

	if c.Secure && !id.Secure() {
		return Cookie{}, fmt.Errorf("%w: %q", ErrInsecure, c.Name)
	}
	return c, nil
}
