package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.GenerateToken("session-key")
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-key", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	other := NewTokenIssuer("other-secret", time.Hour)
	foreign, err := other.GenerateToken("session-key")
	require.NoError(t, err)
	_, err = issuer.ValidateToken(foreign)
	assert.Error(t, err)

	expired := NewTokenIssuer("secret", -time.Minute)
	old, err := expired.GenerateToken("session-key")
	require.NoError(t, err)
	_, err = issuer.ValidateToken(old)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = issuer.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenIssuer_RandomSecret(t *testing.T) {
	a := NewTokenIssuer("", time.Hour)
	b := NewTokenIssuer("", time.Hour)

	token, err := a.GenerateToken("k")
	require.NoError(t, err)
	_, err = b.ValidateToken(token)
	assert.Error(t, err)
}
