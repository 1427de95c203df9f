package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	service := NewAuthService(newFakeUserStore())

	user, err := service.Signup(context.Background(), "  Alice@Example.COM ", "supersecret")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NotZero(t, user.ID)
}

func TestSignupValidation(t *testing.T) {
	service := NewAuthService(newFakeUserStore())

	_, err := service.Signup(context.Background(), "", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Signup(context.Background(), "alice@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Signup(context.Background(), "not-an-email", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Signup(context.Background(), "alice@example.com", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSignupDuplicateEmail(t *testing.T) {
	service := NewAuthService(newFakeUserStore())

	_, err := service.Signup(context.Background(), "alice@example.com", "supersecret")
	require.NoError(t, err)

	// Same address with different casing still collides.
	_, err = service.Signup(context.Background(), "ALICE@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	service := NewAuthService(newFakeUserStore())

	created, err := service.Signup(context.Background(), "alice@example.com", "supersecret")
	require.NoError(t, err)

	user, err := service.Login(context.Background(), "alice@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	service := NewAuthService(newFakeUserStore())

	_, err := service.Signup(context.Background(), "alice@example.com", "supersecret")
	require.NoError(t, err)

	_, unknownErr := service.Login(context.Background(), "nobody@example.com", "supersecret")
	_, wrongErr := service.Login(context.Background(), "alice@example.com", "wrongpassword")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	// The two failures must be identical so responses cannot enumerate emails.
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}
