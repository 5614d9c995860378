package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// Middleware extracts the bearer token, verifies it, and stores the user in
// the request context. Requests without a valid token get 401.
func Middleware(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "a session token is required")
				return
			}

			user, err := v.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				slog.DebugContext(r.Context(), "rejected session token", "error", err)
				writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "the session token is invalid or expired")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAdminMiddleware gates the admin routes. Non-admins get 403 plus a
// redirect hint so the client can send them back to the storefront instead
// of a bare error page.
func RequireAdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := UserFromContext(r.Context())
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "unauthenticated", "a session token is required")
			return
		}
		if !user.IsAdmin() {
			slog.InfoContext(r.Context(), "non-admin user denied admin route", "user_id", user.ID, "path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":    "forbidden",
				"message":  "You do not have permission to access the admin dashboard.",
				"redirect": "/",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAuthError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": msg})
}
