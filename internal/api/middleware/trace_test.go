package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/anki-mcp/internal/platform/logger"
)

func TestTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var seen string
	handler := Trace(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceID(r.Context())
		logger.FromContextOrDefault(r.Context(), base).Info("handled")
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))

	require.Len(t, seen, 32, "Expected a 32-character hex trace ID in the request context")
	assert.Contains(t, buf.String(), `"trace_id":"`+seen+`"`,
		"Expected the request-scoped logger to carry the trace ID")
}

func TestTraceIDsAreUnique(t *testing.T) {
	t.Parallel()

	ids := make(map[string]struct{})
	handler := Trace(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids[TraceID(r.Context())] = struct{}{}
	}))

	for range 5 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	assert.Len(t, ids, 5, "Expected a distinct trace ID per request")
}

func TestTraceIDWithoutMiddleware(t *testing.T) {
	t.Parallel()

	assert.Empty(t, TraceID(context.Background()),
		"Expected no trace ID on a bare context")
}
