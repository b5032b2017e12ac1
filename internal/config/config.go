package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName      string
	AppEnv       string
	AppURL       string
	Port         string
	SupportEmail string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Shared secrets for machine callers. Empty means the guarded
	// endpoint rejects every request.
	CronSecret     string
	PipelineSecret string

	// Notifications
	DiscordWebhookURL string
	PipelineChannelID string

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Plaid
	PlaidClientID    string
	PlaidSecret      string
	PlaidEnvironment string // "sandbox", "development", or "production"

	// Observability (optional)
	SentryDSN string

	// Invites
	InviteMaxUses int
	InviteExpiry  time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:      envString("APP_NAME", "Desperado Club"),
		AppEnv:       envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:       envString("APP_URL", "http://localhost:8090"),
		Port:         envString("PORT", "8090"),
		SupportEmail: envString("SUPPORT_EMAIL", "hello@example.com"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/desperado.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// Shared secrets (no defaults: unset means fail closed)
		CronSecret:     envString("CRON_SECRET", ""),
		PipelineSecret: envString("PIPELINE_SECRET", ""),

		// Notifications
		DiscordWebhookURL: envString("DISCORD_WEBHOOK_URL", ""),
		PipelineChannelID: envString("PIPELINE_CHANNEL_ID", ""),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Plaid
		PlaidClientID:    envString("PLAID_CLIENT_ID", ""),
		PlaidSecret:      envString("PLAID_SECRET", ""),
		PlaidEnvironment: envString("PLAID_ENV", "sandbox"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Invites
		InviteMaxUses: envInt("INVITE_MAX_USES", 10),
		InviteExpiry:  envDuration("INVITE_EXPIRY", 7*24*time.Hour),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development allows some services (like email) to use fallback modes for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.CronSecret == "" {
		slog.Warn("CRON_SECRET unset, cron endpoints will reject all requests")
	}
	if cfg.PipelineSecret == "" {
		slog.Warn("PIPELINE_SECRET unset, pipeline queue endpoint will reject all requests")
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
// Safe to expose in ctx and client-facing contexts.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:      c.AppName,
		AppEnv:       c.AppEnv,
		AppURL:       c.AppURL,
		Port:         c.Port,
		SupportEmail: c.SupportEmail,

		EmailFrom: c.EmailFrom,

		PlaidEnvironment: c.PlaidEnvironment,

		InviteMaxUses: c.InviteMaxUses,
		InviteExpiry:  c.InviteExpiry,
	}
}
