package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ChannelPolicy holds per-channel entitlement gating. Email intentionally
// bypasses the entitlement check while SMS is gated; this asymmetry is a
// product decision, so it lives in configuration rather than code.
type ChannelPolicy struct {
	GateEmail bool // Require a paid tier before emailing
	GateSMS   bool // Require a paid tier before texting
}

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Database
	DatabaseURL string

	// CORS
	AllowedOrigins []string

	// Entitlement gating per notification channel
	Entitlement ChannelPolicy

	// Price enrichment
	PriceBatchSize int           // Max concurrent fetches per batch
	PriceTimeout   time.Duration // Per-fetch timeout at the HTTP boundary

	// Upstream price sources
	PolygonAPIKey string

	// Senders
	ResendAPIKey     string
	EmailFrom        string
	EmailSubject     string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// Billing provider
	StripeAPIKey string

	// Price warm refresh job
	RefreshEnabled  bool
	RefreshSchedule string        // Cron expression (e.g., "*/10 * * * *")
	RefreshTimeout  time.Duration // Timeout for one refresh cycle
}

func Load() *Config {
	env := getEnv("ENV", "development")

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  env,

		// Database
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/signals?sslmode=disable"),

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),

		// Entitlement gating. SMS is gated, email is not; see ChannelPolicy.
		Entitlement: ChannelPolicy{
			GateEmail: getBoolEnv("ENTITLEMENT_GATE_EMAIL", false),
			GateSMS:   getBoolEnv("ENTITLEMENT_GATE_SMS", true),
		},

		// Price enrichment
		PriceBatchSize: getIntEnv("PRICE_BATCH_SIZE", 40),
		PriceTimeout:   getDurationEnv("PRICE_TIMEOUT", 10*time.Second),

		// Upstream price sources
		PolygonAPIKey: os.Getenv("API_KEY_POLYGON"),

		// Senders
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		EmailFrom:        getEnv("EMAIL_FROM", "notification@hedgecoast.com"),
		EmailSubject:     getEnv("EMAIL_SUBJECT", "Market Move Signal"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_SENDER_NUMBER"),

		// Billing provider
		StripeAPIKey: os.Getenv("STRIPE_API_KEY"),

		// Price warm refresh job
		RefreshEnabled:  getBoolEnv("PRICE_REFRESH_ENABLED", false),
		RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "*/10 * * * *"),
		RefreshTimeout:  getDurationEnv("PRICE_REFRESH_TIMEOUT", 2*time.Minute),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
