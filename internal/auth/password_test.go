package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)

	assert.True(t, CheckPasswordHash("supersecret", hash))
	assert.False(t, CheckPasswordHash("wrongpassword", hash))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := HashPassword("supersecret")
	require.NoError(t, err)

	second, err := HashPassword("supersecret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.NoError(t, ValidatePassword("a much longer password"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.Error(t, ValidatePassword(""))
}
