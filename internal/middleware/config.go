package middleware

import (
	"net/http"

	"github.com/desperadoclub/desperado/internal/config"
	"github.com/desperadoclub/desperado/internal/ctxkeys"
)

// Config adds the sanitized app configuration to the request context.
// Secrets are stripped before the config enters the context.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), cfg.Sanitized())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
