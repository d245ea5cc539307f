package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Admin123!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.True(t, strings.HasPrefix(hash, "$2"), "hash should be bcrypt encoded")

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, PasswordCost, cost)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()

	hash1, err := HashPassword("samepassword")
	require.NoError(t, err)
	hash2, err := HashPassword("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "each hash should embed a fresh salt")
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	t.Run("accepts matching password", func(t *testing.T) {
		require.NoError(t, VerifyPassword("correct horse battery staple", hash))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		err := VerifyPassword("wrong", hash)
		require.ErrorIs(t, err, ErrHashMismatch)
	})

	t.Run("malformed hash is not a mismatch", func(t *testing.T) {
		err := VerifyPassword("anything", "not-a-bcrypt-hash")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrHashMismatch)
	})
}
