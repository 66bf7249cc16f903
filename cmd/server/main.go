// Package main implements the anki-mcp server entrypoint. It exposes a
// running Anki collection to MCP clients over stdio or streamable HTTP,
// talking to the collection through the AnkiConnect add-on.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/phrazzld/anki-mcp/internal/api"
	"github.com/phrazzld/anki-mcp/internal/config"
	"github.com/phrazzld/anki-mcp/internal/platform/ankiconnect"
	"github.com/phrazzld/anki-mcp/internal/platform/logger"
	"github.com/phrazzld/anki-mcp/internal/service"
)

// shutdownTimeout bounds the HTTP server drain on shutdown.
const shutdownTimeout = 10 * time.Second

// app bundles everything main needs to run a transport.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	client    *ankiconnect.Client
	mcpServer *server.MCPServer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// A dead collection gateway is not fatal at startup: Anki may simply
	// not be running yet, and every call reports it cleanly.
	if err := a.client.Ping(ctx); err != nil {
		a.logger.Warn("collection gateway not reachable at startup",
			slog.String("error", err.Error()),
			slog.String("connect_url", a.cfg.Anki.ConnectURL))
	}

	switch a.cfg.Server.Transport {
	case "http":
		err = a.runHTTP(ctx)
	default:
		err = a.runStdio(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	a.logger.Info("server stopped")
}

// initializeApp loads configuration, sets up logging, and wires the
// stores, services and MCP surface together.
func initializeApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		slog.String("transport", cfg.Server.Transport),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("connect_url", cfg.Anki.ConnectURL),
		slog.String("default_deck", cfg.Anki.DefaultDeck))

	client := ankiconnect.NewClient(cfg.Anki.ConnectURL, cfg.Anki.RequestTimeout, appLogger)
	deckStore := ankiconnect.NewDeckStore(client, appLogger)
	cardStore := ankiconnect.NewCardStore(client, appLogger)
	noteStore := ankiconnect.NewNoteStore(client, appLogger)
	reviewStore := ankiconnect.NewReviewStore(client, appLogger)

	deckService, err := service.NewDeckService(deckStore, cardStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}
	cardService, err := service.NewCardService(deckStore, noteStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}
	reviewService, err := service.NewReviewService(deckStore, cardStore, reviewStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}
	importService, err := service.NewImportService(deckStore, noteStore, cfg.Anki.NoteType, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create import service: %w", err)
	}

	mcpServer := api.New(api.Services{
		Decks:   deckService,
		Cards:   cardService,
		Reviews: reviewService,
		Imports: importService,
	}, cfg.Anki.DefaultDeck, appLogger)

	return &app{
		cfg:       cfg,
		logger:    appLogger,
		client:    client,
		mcpServer: mcpServer,
	}, nil
}

// runStdio serves the MCP protocol on stdin/stdout until the client
// disconnects or a shutdown signal arrives. All logging goes to stderr;
// stdout belongs to the protocol.
func (a *app) runStdio(ctx context.Context) error {
	a.logger.Info("serving MCP over stdio")

	stdio := server.NewStdioServer(a.mcpServer)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// runHTTP serves the streamable HTTP transport until a shutdown signal
// arrives, then drains in-flight requests.
func (a *app) runHTTP(ctx context.Context) error {
	handler := api.NewHTTPHandler(a.mcpServer, a.client, a.logger)
	srv := &http.Server{
		Addr:              a.cfg.Server.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("serving MCP over HTTP", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down HTTP server: %w", err)
		}
		return nil
	}
}
