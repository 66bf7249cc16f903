// Package middleware provides HTTP middleware for the streamable HTTP
// transport.
package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/phrazzld/anki-mcp/internal/platform/logger"
)

// contextKey is a private type for context values set by this package.
type contextKey string

// traceIDKey is the context key for the request trace ID.
const traceIDKey contextKey = "traceID"

// traceIDLength is the number of random bytes in a trace ID (32 hex chars).
const traceIDLength = 16

// Trace assigns every request a trace ID and stores a request-scoped
// logger carrying it in the context, so downstream handlers and services
// log with the same correlation ID. Apply it before any other middleware.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := newTraceID()
			log := base.With(slog.String("trace_id", traceID))

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			ctx := context.WithValue(r.Context(), traceIDKey, traceID)
			ctx = logger.WithLogger(ctx, log)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TraceID returns the trace ID stored in the context, or "" when the
// request did not pass through Trace.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// newTraceID returns a random 32-character hex ID.
func newTraceID() string {
	b := make([]byte, traceIDLength)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is effectively unrecoverable; an empty
		// trace ID still lets the request proceed.
		slog.Error("failed to generate trace ID", slog.String("error", err.Error()))
		return ""
	}
	return hex.EncodeToString(b)
}
