package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"

	"github.com/phrazzld/anki-mcp/internal/api/middleware"
)

// Pinger probes the collection gateway. Satisfied by the AnkiConnect
// client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewHTTPHandler wraps the MCP server in the streamable HTTP transport
// and mounts it on a chi router with trace middleware and a health
// endpoint. The health check probes the collection gateway so load
// balancers see the real dependency state.
func NewHTTPHandler(mcpServer *server.MCPServer, pinger Pinger, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Trace(logger))

	streamable := server.NewStreamableHTTPServer(mcpServer)
	r.Mount("/mcp", streamable)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if pinger != nil {
			if err := pinger.Ping(req.Context()); err != nil {
				logger.Warn("health check failed", slog.String("error", err.Error()))
				w.WriteHeader(http.StatusServiceUnavailable)
				if _, werr := w.Write([]byte("collection unavailable")); werr != nil {
					logger.Error("failed to write health response", slog.String("error", werr.Error()))
				}
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", slog.String("error", err.Error()))
		}
	})

	return r
}
