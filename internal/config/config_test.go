package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	_ = os.Unsetenv("PORT")
	_ = os.Unsetenv("ENV")
	_ = os.Unsetenv("DATABASE_URL")
	_ = os.Unsetenv("ENTITLEMENT_GATE_EMAIL")
	_ = os.Unsetenv("ENTITLEMENT_GATE_SMS")
	_ = os.Unsetenv("PRICE_BATCH_SIZE")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Contains(t, cfg.DatabaseURL, "postgres://")
	assert.Equal(t, 40, cfg.PriceBatchSize)
	assert.False(t, cfg.Entitlement.GateEmail, "email is not entitlement-gated by default")
	assert.True(t, cfg.Entitlement.GateSMS, "SMS is entitlement-gated by default")
	assert.Equal(t, "Market Move Signal", cfg.EmailSubject)
	assert.False(t, cfg.RefreshEnabled)
}

func TestLoad_WithEnvVars(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://test:5432/testdb")
	t.Setenv("ALLOWED_ORIGINS", "http://example.com,http://test.com")
	t.Setenv("ENTITLEMENT_GATE_EMAIL", "true")
	t.Setenv("ENTITLEMENT_GATE_SMS", "false")
	t.Setenv("PRICE_BATCH_SIZE", "15")
	t.Setenv("PRICE_TIMEOUT", "3s")
	t.Setenv("API_KEY_POLYGON", "poly-key")
	t.Setenv("STRIPE_API_KEY", "sk_test_123")
	t.Setenv("PRICE_REFRESH_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "postgres://test:5432/testdb", cfg.DatabaseURL)
	assert.Len(t, cfg.AllowedOrigins, 2)
	assert.True(t, cfg.Entitlement.GateEmail)
	assert.False(t, cfg.Entitlement.GateSMS)
	assert.Equal(t, 15, cfg.PriceBatchSize)
	assert.Equal(t, 3*time.Second, cfg.PriceTimeout)
	assert.Equal(t, "poly-key", cfg.PolygonAPIKey)
	assert.Equal(t, "sk_test_123", cfg.StripeAPIKey)
	assert.True(t, cfg.RefreshEnabled)
}

func TestConfig_IsDevelopment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env      string
		expected bool
	}{
		{"development", true},
		{"production", false},
		{"staging", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{Env: tt.env}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env      string
		expected bool
	}{
		{"production", true},
		{"development", false},
		{"staging", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{Env: tt.env}
			assert.Equal(t, tt.expected, cfg.IsProduction())
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test_value")

	assert.Equal(t, "test_value", getEnv("TEST_VAR", "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT_VAR", "default"))
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		setEnv       bool
		defaultValue bool
		expected     bool
	}{
		{"true value", "true", true, false, true},
		{"false value", "false", true, true, false},
		{"invalid value", "not-a-bool", true, true, true},
		{"unset", "", false, true, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv("TEST_BOOL_VAR", tt.envValue)
			} else {
				_ = os.Unsetenv("TEST_BOOL_VAR")
			}
			assert.Equal(t, tt.expected, getBoolEnv("TEST_BOOL_VAR", tt.defaultValue))
		})
	}
}

func TestGetIntEnv(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		setEnv       bool
		defaultValue int
		expected     int
	}{
		{"valid value", "25", true, 40, 25},
		{"zero is rejected", "0", true, 40, 40},
		{"negative is rejected", "-3", true, 40, 40},
		{"invalid value", "lots", true, 40, 40},
		{"unset", "", false, 40, 40},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv("TEST_INT_VAR", tt.envValue)
			} else {
				_ = os.Unsetenv("TEST_INT_VAR")
			}
			assert.Equal(t, tt.expected, getIntEnv("TEST_INT_VAR", tt.defaultValue))
		})
	}
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("TEST_DURATION_VAR", "90s")

	assert.Equal(t, 90*time.Second, getDurationEnv("TEST_DURATION_VAR", time.Minute))
	assert.Equal(t, time.Minute, getDurationEnv("NON_EXISTENT_VAR", time.Minute))
}
