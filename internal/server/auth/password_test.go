package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash, "hash must not contain the plain password")

	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
}

func TestCheckPassword_EmptyHash(t *testing.T) {
	t.Parallel()

	// Federation-only accounts have no stored hash; any password must fail.
	assert.False(t, CheckPassword("", "anything"))
}

func TestHashPassword_DifferentSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "bcrypt must salt every hash")
}
