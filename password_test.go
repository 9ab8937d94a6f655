package onsocial_test

import (
	"testing"

	"github.com/onsocialhq/onsocial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("empty password is rejected", func(t *testing.T) {
		_, err := onsocial.HashPassword("")
		assert.ErrorIs(t, err, onsocial.ErrNoEmptyString)
	})

	t.Run("hash verifies and never echoes the input", func(t *testing.T) {
		hash, err := onsocial.HashPassword("Sup3rsecret")
		require.NoError(t, err)
		assert.NotEqual(t, "Sup3rsecret", hash)
		assert.NoError(t, onsocial.ComparePasswordAndHash("Sup3rsecret", hash))
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := onsocial.HashPassword("Sup3rsecret")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		err := onsocial.ComparePasswordAndHash("n0tTheSecret", hash)
		assert.ErrorIs(t, err, onsocial.ErrMismatchedHashAndPassword)
	})

	t.Run("garbage hash", func(t *testing.T) {
		err := onsocial.ComparePasswordAndHash("Sup3rsecret", "not-a-bcrypt-hash")
		require.Error(t, err)
		assert.NotErrorIs(t, err, onsocial.ErrMismatchedHashAndPassword)
	})
}

func TestPasswordHasherImplementsAuthenticator(t *testing.T) {
	hasher := onsocial.NewPasswordHasher()

	hash, err := hasher.HashPassword("Sup3rsecret")
	require.NoError(t, err)
	assert.NoError(t, hasher.ComparePasswordAndHash("Sup3rsecret", hash))
	assert.Error(t, hasher.ComparePasswordAndHash("different", hash))
}
