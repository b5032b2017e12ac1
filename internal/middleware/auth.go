package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/desperadoclub/desperado/internal/ctxkeys"
	"github.com/desperadoclub/desperado/internal/service"
)

// AuthMiddleware checks the JWT cookie and, when valid, adds the user and
// their household membership (if any) to the request context.
func AuthMiddleware(authService *service.AuthService, userService *service.UserService, householdService *service.HouseholdService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("auth_token")
			if err != nil {
				// No cookie, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyJWT(cookie.Value)
			if err != nil {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userService.ByID(userID)
			if err != nil {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// Never carry the hash through the request context
			user.PasswordHash = nil

			ctx := ctxkeys.WithUser(r.Context(), user)

			membership, err := householdService.Membership(userID)
			if err == nil {
				ctx = ctxkeys.WithMembership(ctx, membership)
			} else if !errors.Is(err, service.ErrNotMember) {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with a JSON 401.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireMembership rejects authenticated users who have not joined a
// household yet. Implies RequireAuth.
func RequireMembership(next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		membership := ctxkeys.Membership(r.Context())
		if membership == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "household membership required"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
