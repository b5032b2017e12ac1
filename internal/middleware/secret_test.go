package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequireSecret(t *testing.T) {
	const secret = "cron-secret-value"

	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{"correct token passes", secret, "Bearer " + secret, http.StatusOK},
		{"wrong token rejected", secret, "Bearer wrong", http.StatusUnauthorized},
		{"missing header rejected", secret, "", http.StatusUnauthorized},
		{"malformed scheme rejected", secret, "Basic " + secret, http.StatusUnauthorized},
		{"token without scheme rejected", secret, secret, http.StatusUnauthorized},
		{"unset secret fails closed", "", "Bearer ", http.StatusUnauthorized},
		{"unset secret rejects empty token too", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := RequireSecret(tt.configured)(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/cron/streak-check", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != (tt.wantStatus == http.StatusOK) {
				t.Errorf("handler called = %v with status %d", called, rec.Code)
			}
		})
	}
}

// A failed guard must not reflect the expected secret or the supplied token.
func TestRequireSecretResponseLeaksNothing(t *testing.T) {
	const secret = "super-secret-token"
	handler := RequireSecret(secret)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/pipeline/queue", nil)
	req.Header.Set("Authorization", "Bearer attacker-guess")
	rec := httptest.NewRecorder()

	handler(rec, req)

	body := rec.Body.String()
	if strings.Contains(body, secret) {
		t.Error("response body contains the configured secret")
	}
	if strings.Contains(body, "attacker-guess") {
		t.Error("response body echoes the supplied token")
	}
	if !strings.Contains(body, "unauthorized") {
		t.Errorf("expected generic unauthorized body, got %q", body)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"Bearer  abc123 ", "abc123"},
		{"bearer abc123", ""},
		{"abc123", ""},
		{"", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if got := extractBearerToken(req); got != tt.want {
			t.Errorf("extractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
