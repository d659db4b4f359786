package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const ctxRequestIDKey contextKey = "request_id"

// RequestID assigns each request a uuid, echoes it in the X-Request-ID
// response header and stores it in the request context for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), ctxRequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromCtx returns the request id, or "" when none was assigned.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestIDKey).(string)
	return id
}
