package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cookierelay/cookierelay-go/pkg/cookies"
)

func TestKeyValidate(t *testing.T) {
	id := cookies.MustParseIdentity("example.com")

	tests := []struct {
		name string
		key  Key
		want error
	}{
		{"by cookie", Key{Kind: KindByCookie, Identity: id, Name: "a"}, nil},
		{"by url", Key{Kind: KindByURL, Identity: id}, nil},
		{"missing name", Key{Kind: KindByCookie, Identity: id}, ErrMissingName},
		{"all changes", Key{Kind: KindAllChanges}, ErrNotImplemented},
		{"empty identity", Key{Kind: KindByURL}, cookies.ErrInvalidIdentity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.key.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Error(t, Key{Kind: Kind(9), Identity: id}.Validate())
}

func TestKindAndStateStrings(t *testing.T) {
	assert.Equal(t, "BY_COOKIE", KindByCookie.String())
	assert.Equal(t, "BY_URL", KindByURL.String())
	assert.Equal(t, "ALL_CHANGES", KindAllChanges.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())

	assert.Equal(t, "CREATED", StateCreated.String())
	assert.Equal(t, "SUBSCRIBING", StateSubscribing.String())
	assert.Equal(t, "ACTIVE", StateActive.String())
	assert.Equal(t, "UNSUBSCRIBING", StateUnsubscribing.String())
	assert.Equal(t, "DESTROYED", StateDestroyed.String())
	assert.Equal(t, "State(12)", State(12).String())
}

func TestKeyString(t *testing.T) {
	id := cookies.MustParseIdentity("https://example.com/app")
	assert.Equal(t, `BY_COOKIE https://example.com/app "sid"`, Key{Kind: KindByCookie, Identity: id, Name: "sid"}.String())
	assert.Equal(t, "BY_URL https://example.com/app", Key{Kind: KindByURL, Identity: id}.String())
	assert.Equal(t, "ALL_CHANGES", Key{Kind: KindAllChanges}.String())
}
