package middlewares

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

// ContextKeyRequestID is the context key handlers use to correlate log lines
// with a single request.
const ContextKeyRequestID contextKey = "x-request-id"

// AttachRequestMetadata copies the chi request id into the context under a
// typed key and echoes it back in the response header, so a user-reported
// failure can be matched to the server logs.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())

		ctx := context.WithValue(r.Context(), ContextKeyRequestID, requestID)
		w.Header().Set("X-Request-Id", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID extracts the id stored by AttachRequestMetadata.
// Uses the comma-ok idiom to safely extract the typed context value.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}
