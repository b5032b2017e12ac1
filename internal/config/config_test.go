package config

import (
	"testing"
	"time"
)

func TestEnvString(t *testing.T) {
	t.Setenv("TEST_ENV_STRING", "set-value")

	if got := envString("TEST_ENV_STRING", "default"); got != "set-value" {
		t.Errorf("envString set = %q, want %q", got, "set-value")
	}
	if got := envString("TEST_ENV_STRING_MISSING", "default"); got != "default" {
		t.Errorf("envString missing = %q, want %q", got, "default")
	}
}

func TestEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  int
	}{
		{"valid", "42", true, 42},
		{"invalid falls back", "not-a-number", true, 7},
		{"empty falls back", "", true, 7},
		{"unset falls back", "", false, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_ENV_INT", tt.value)
			}
			if got := envInt("TEST_ENV_INT", 7); got != tt.want {
				t.Errorf("envInt = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEnvDuration(t *testing.T) {
	def := 168 * time.Hour

	tests := []struct {
		name  string
		value string
		set   bool
		want  time.Duration
	}{
		{"valid", "30m", true, 30 * time.Minute},
		{"invalid falls back", "tomorrow", true, def},
		{"unset falls back", "", false, def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv("TEST_ENV_DURATION", tt.value)
			}
			if got := envDuration("TEST_ENV_DURATION", def); got != tt.want {
				t.Errorf("envDuration = %v, want %v", got, tt.want)
			}
		})
	}
}

// Sanitized must never carry secrets into request contexts, but the invite
// knobs the handlers read have to survive.
func TestSanitized(t *testing.T) {
	cfg := &Config{
		AppName:        "Desperado Club",
		AppEnv:         "production",
		JWTSecret:      "jwt-secret",
		CronSecret:     "cron-secret",
		PipelineSecret: "pipeline-secret",
		ResendAPIKey:   "re_123",
		PlaidClientID:  "plaid-client",
		PlaidSecret:    "plaid-secret",
		SentryDSN:      "https://sentry.example",
		InviteMaxUses:  10,
		InviteExpiry:   7 * 24 * time.Hour,
	}

	s := cfg.Sanitized()

	if s.JWTSecret != "" || s.CronSecret != "" || s.PipelineSecret != "" ||
		s.ResendAPIKey != "" || s.PlaidClientID != "" || s.PlaidSecret != "" ||
		s.SentryDSN != "" {
		t.Error("Sanitized leaked a secret field")
	}
	if s.AppName != cfg.AppName || s.AppEnv != cfg.AppEnv {
		t.Error("Sanitized dropped public app fields")
	}
	if s.InviteMaxUses != 10 || s.InviteExpiry != 7*24*time.Hour {
		t.Error("Sanitized dropped invite settings")
	}
}

func TestIsEnvironment(t *testing.T) {
	dev := &Config{AppEnv: "development"}
	prod := &Config{AppEnv: "production"}

	if !dev.IsDevelopment() || dev.IsProduction() {
		t.Error("development env misclassified")
	}
	if !prod.IsProduction() || prod.IsDevelopment() {
		t.Error("production env misclassified")
	}
}
