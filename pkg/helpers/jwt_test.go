package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	s := NewSessionTokenSigner("secret")
	tok, err := s.Sign("sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	sid, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sid)
}

func TestSessionTokenRejectsOtherSecret(t *testing.T) {
	tok, err := NewSessionTokenSigner("a").Sign("sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = NewSessionTokenSigner("b").Parse(tok)
	assert.Error(t, err)
}

func TestSessionTokenRejectsExpired(t *testing.T) {
	s := NewSessionTokenSigner("secret")
	tok, err := s.Sign("sid-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = s.Parse(tok)
	assert.Error(t, err)
}

func TestSessionTokenRejectsGarbage(t *testing.T) {
	_, err := NewSessionTokenSigner("secret").Parse("garbage")
	assert.Error(t, err)
}
