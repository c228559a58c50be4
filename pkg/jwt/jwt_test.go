package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(secret, "roleready-api", 24)

	token, err := tm.GenerateToken("user-1", "ada@example.com", "Ada", "mentor")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "mentor", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, 24*time.Hour, tm.TTL())
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager(secret, "roleready-api", 1)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := tm.GenerateToken("user-1", "ada@example.com", "Ada", "user")
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager(secret, "roleready-api", 1)
	token, err := issuer.GenerateToken("user-1", "ada@example.com", "Ada", "user")
	require.NoError(t, err)

	other := NewTokenManager("another-secret-another-secret-xx", "roleready-api", 1)
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	token, err := NewTokenManager(secret, "someone-else", 1).GenerateToken("user-1", "a@b.c", "A", "user")
	require.NoError(t, err)

	_, err = NewTokenManager(secret, "roleready-api", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTimingSafeCompare(t *testing.T) {
	assert.True(t, TimingSafeCompare("abc", "abc"))
	assert.False(t, TimingSafeCompare("abc", "abd"))
	assert.False(t, TimingSafeCompare("abc", ""))
}
