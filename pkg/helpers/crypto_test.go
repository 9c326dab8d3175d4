package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealerRoundTrip(t *testing.T) {
	s, err := NewSealer("store-secret")
	require.NoError(t, err)

	sealed, err := s.Seal([]byte(`{"id":"x"}`))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), `"id"`)

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"x"}`, string(plain))
}

func TestSealerRejectsWrongKeyAndShortInput(t *testing.T) {
	a, err := NewSealer("a")
	require.NoError(t, err)
	b, err := NewSealer("b")
	require.NoError(t, err)

	sealed, err := a.Seal([]byte("payload"))
	require.NoError(t, err)

	_, err = b.Open(sealed)
	assert.ErrorIs(t, err, ErrUnseal)

	_, err = a.Open([]byte("short"))
	assert.ErrorIs(t, err, ErrUnseal)
}
