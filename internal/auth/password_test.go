package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	t.Run("MatchingPassword", func(t *testing.T) {
		assert.NoError(t, ComparePassword(hash, "correct horse battery staple"))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		assert.Error(t, ComparePassword(hash, "wrong password"))
	})

	t.Run("SaltedPerCall", func(t *testing.T) {
		other, err := HashPassword("correct horse battery staple", 4)
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})
}
