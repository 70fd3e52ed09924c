package api

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	})
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestExpiringSoon(t *testing.T) {
	assert.True(t, expiringSoon(signedToken(t, 10*time.Second), refreshLeeway))
	assert.True(t, expiringSoon(signedToken(t, -time.Minute), refreshLeeway))
	assert.False(t, expiringSoon(signedToken(t, time.Hour), refreshLeeway))
}

func TestExpiringSoonToleratesOpaqueTokens(t *testing.T) {
	assert.False(t, expiringSoon("not-a-jwt", refreshLeeway))
	assert.False(t, expiringSoon("", refreshLeeway))
}

func TestExpiringSoonWithoutExpClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "42"})
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.False(t, expiringSoon(raw, refreshLeeway))
}
