package cookies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		in   string
		want Identity
	}{
		{"example.com", Identity{Scheme: "https", Host: "example.com", Path: "/"}},
		{"https://Example.COM", Identity{Scheme: "https", Host: "example.com", Path: "/"}},
		{"http://a.example.com/app/page", Identity{Scheme: "http", Host: "a.example.com", Path: "/app/page"}},
		{"https://example.com:8443/x", Identity{Scheme: "https", Host: "example.com", Path: "/x"}},
		{"  example.com/path  ", Identity{Scheme: "https", Host: "example.com", Path: "/path"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIdentity(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIdentityErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "ftp://example.com", "https://", "https://%zz"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseIdentity(in)
			assert.ErrorIs(t, err, ErrInvalidIdentity)
		})
	}
}

func TestIdentityString(t *testing.T) {
	assert.Equal(t, "https://example.com/a", MustParseIdentity("example.com/a").String())
	assert.Equal(t, "", Identity{}.String())
	assert.True(t, Identity{}.IsZero())
}

func TestMustParseIdentityPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseIdentity("") })
}

func TestDomainMatch(t *testing.T) {
	assert.True(t, domainMatch("example.com", "example.com"))
	assert.True(t, domainMatch("www.example.com", "example.com"))
	assert.False(t, domainMatch("badexample.com", "example.com"))
	assert.False(t, domainMatch("example.com", "www.example.com"))
}

func TestPathMatch(t *testing.T) {
	assert.True(t, pathMatch("/", "/"))
	assert.True(t, pathMatch("/app/page", "/app"))
	assert.True(t, pathMatch("/app/page", "/app/"))
	assert.False(t, pathMatch("/application", "/app"))
	assert.False(t, pathMatch("/", "/app"))
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "/", defaultPath(""))
	assert.Equal(t, "/", defaultPath("/"))
	assert.Equal(t, "/", defaultPath("/page"))
	assert.Equal(t, "/app", defaultPath("/app/page"))
	assert.Equal(t, "/", defaultPath("relative"))
}

func TestCookieIncludedFor(t *testing.T) {
	hostOnly := Cookie{Name: "a", Domain: "example.com", Path: "/", HostOnly: true}
	domain := Cookie{Name: "b", Domain: "example.com", Path: "/"}
	scoped := Cookie{Name: "c", Domain: "example.com", Path: "/app"}
	secure := Cookie{Name: "d", Domain: "example.com", Path: "/", Secure: true}

	root := MustParseIdentity("https://example.com/")
	sub := MustParseIdentity("https://www.example.com/")
	app := MustParseIdentity("https://example.com/app/x")
	plain := MustParseIdentity("http://example.com/")

	assert.True(t, hostOnly.IncludedFor(root))
	assert.False(t, hostOnly.IncludedFor(sub))

	assert.True(t, domain.IncludedFor(root))
	assert.True(t, domain.IncludedFor(sub))

	assert.False(t, scoped.IncludedFor(root))
	assert.True(t, scoped.IncludedFor(app))

	assert.True(t, secure.IncludedFor(root))
	assert.False(t, secure.IncludedFor(plain))
}

func TestChangeCause(t *testing.T) {
	assert.Equal(t, "INSERTED", CauseInserted.String())
	assert.Equal(t, "EXPIRED_OVERWRITE", CauseExpiredOverwrite.String())
	assert.Equal(t, "UNKNOWN", ChangeCause(99).String())

	assert.False(t, CauseInserted.IsDeletion())
	for _, c := range []ChangeCause{CauseExplicit, CauseUnknownDeletion, CauseOverwrite, CauseExpired, CauseEvicted, CauseExpiredOverwrite} {
		assert.True(t, c.IsDeletion(), c.String())
	}
}
