package middleware

import (
	"encoding/json"
	"net/http"
)

// SessionChecker is the part of the session store the gate needs.
type SessionChecker interface {
	IsAuthenticated() bool
}

// RequireSession rejects requests with 401 until a backend login has
// succeeded. The check is per request: a login that later fails flips the
// gate closed again.
func RequireSession(session SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.IsAuthenticated() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "Not authenticated"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
