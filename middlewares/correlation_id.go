package middlewares

import (
	"context"
	"net/http"

	"github.com/pborman/uuid"
)

type ContextKey string

// CorrelationIDKey is the context key under which the per-request tracing
// identifier travels.
const CorrelationIDKey ContextKey = "correlation-id"

var correlationIDHeaders = []string{"X-Correlation-ID", "X-CorrelationID", "X-ForRequest-ID", "X-Request-ID", "X-Vcap-Request-Id"}

// AddCorrelationIDToContext is an inbound middleware for servers embedding
// the broker client: it lifts the correlation ID from the first recognized
// header into the request context, generating one when no header is present.
// The client then propagates it to the broker on every outbound call.
func AddCorrelationIDToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		correlationID := ""
		for _, header := range correlationIDHeaders {
			if value := req.Header.Get(header); value != "" {
				correlationID = value
				break
			}
		}

		if correlationID == "" {
			correlationID = uuid.New()
		}

		next.ServeHTTP(w, req.WithContext(WithCorrelationID(req.Context(), correlationID)))
	})
}

// WithCorrelationID returns a context carrying the given correlation ID.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}

// CorrelationIDFromContext returns the correlation ID carried by the
// context, if any.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(CorrelationIDKey).(string)
	return value, ok && value != ""
}
