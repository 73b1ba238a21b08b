package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mveldsman/gxproxy/internal/logger"
)

type contextKey int

const requestIDKey contextKey = 0

// RequestID tags every request with a fresh id, exposed in the response
// headers and the request log line.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		logger.Log.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request id from the context, or "" when the
// middleware did not run.
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}
