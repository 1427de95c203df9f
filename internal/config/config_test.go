package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/gigboard")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.PaymentBypassEnabled)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("PAYMENT_BYPASS_ENABLED", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.PaymentBypassEnabled)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMissingJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadStripeKeyOptionalWithBypass(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STRIPE_SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PAYMENT_BYPASS_ENABLED", "true")

	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadInvalidSessionTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}
