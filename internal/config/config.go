package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// SessionTTL bounds how long a login stays valid without re-authenticating.
	SessionTTL time.Duration

	// RedisAddr selects the Redis session store when set; empty falls back
	// to the in-process store.
	RedisAddr     string
	RedisPassword string

	StripeSecretKey      string
	StripePublishableKey string

	// PaymentBypassEnabled marks gigs paid at creation without touching the
	// payment gateway. It must be set explicitly; it is never inferred from
	// the runtime environment.
	PaymentBypassEnabled bool

	FrontendURL string
}

// Load reads configuration from environment variables and validates required fields.
func Load() (Config, error) {
	bypass, err := getEnvBool("PAYMENT_BYPASS_ENABLED", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse PAYMENT_BYPASS_ENABLED: %w", err)
	}

	ttl, err := getEnvDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("parse SESSION_TTL: %w", err)
	}

	cfg := Config{
		Port:                 getEnv("PORT", "3000"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		SessionTTL:           ttl,
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		PaymentBypassEnabled: bypass,
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if !c.PaymentBypassEnabled && c.StripeSecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required unless PAYMENT_BYPASS_ENABLED is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.ParseBool(v)
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(v)
}
