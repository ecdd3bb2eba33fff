package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	digest, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", digest)

	again, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, digest, again, "each hash gets a fresh salt")

	ok, err := h.Verify(digest, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(digest, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_CorruptDigest(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	ok, err := h.Verify("not-a-bcrypt-hash", "secret1")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCorruptHash)
}

func TestNewPasswordHasher_DefaultsOutOfRangeCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).Cost)
	assert.Equal(t, 12, NewPasswordHasher(12).Cost)
}
