package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/zhilongzheng/friday-tasks/internal/auth"
)

// TokenVerifier is the slice of the token store the gate needs.
type TokenVerifier interface {
	Verify(token string) bool
}

// RequireAuth gates mutating routes on the X-Auth-Token header. A missing
// token and an unknown or expired one answer distinct 401 bodies, matching
// what existing clients branch on.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(auth.HeaderToken)
			if token == "" {
				unauthorized(w, "Authentication required")
				return
			}
			if !tokens.Verify(token) {
				unauthorized(w, "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
