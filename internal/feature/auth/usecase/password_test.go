package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, salt, err := HashPassword("password123", "")
	require.NoError(t, err)
	assert.Len(t, salt, 32, "16 random bytes, hex encoded")
	assert.Len(t, hash, 64)

	again, sameSalt, err := HashPassword("password123", salt)
	require.NoError(t, err)
	assert.Equal(t, salt, sameSalt)
	assert.Equal(t, hash, again, "same password and salt give the same hash")

	_, otherSalt, err := HashPassword("password123", "")
	require.NoError(t, err)
	assert.NotEqual(t, salt, otherSalt)
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, salt, err := HashPassword("s3cret-pass", "")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("s3cret-pass", salt, hash))
	assert.False(t, VerifyPassword("s3cret-pasS", salt, hash))
	assert.False(t, VerifyPassword("s3cret-pass", dummySalt, hash))
	assert.False(t, VerifyPassword("anything", dummySalt, dummyHash))
}
