package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
)

func TestNewTokenManager(t *testing.T) {
	t.Run("RequiresSecret", func(t *testing.T) {
		_, err := NewTokenManager("", time.Minute)
		assert.ErrorIs(t, err, ErrNoSecret)
	})

	t.Run("Succeeds", func(t *testing.T) {
		tm, err := NewTokenManager("secret", time.Minute)
		require.NoError(t, err)
		assert.NotNil(t, tm)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	tm, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := tm.Generate("user-1", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestTokenWithoutTTLNeverExpires(t *testing.T) {
	tm, err := NewTokenManager("test-secret", 0)
	require.NoError(t, err)

	token, err := tm.Generate("user-1", domain.RoleUser)
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestParseExpiredToken(t *testing.T) {
	tm, err := NewTokenManager("test-secret", -time.Minute)
	require.NoError(t, err)

	token, err := tm.Generate("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = tm.Parse(token)
	// Expiry must surface as the expiry fault, never a signature fault.
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	assert.NotErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseForeignToken(t *testing.T) {
	issuer, err := NewTokenManager("their-secret", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenManager("our-secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Generate("user-1", domain.RoleUser)
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseGarbageToken(t *testing.T) {
	tm, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = tm.Parse("not-a-jwt")
	assert.ErrorIs(t, err, jwt.ErrTokenMalformed)
}
