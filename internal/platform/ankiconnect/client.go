package ankiconnect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/anki-mcp/internal/store"
)

// apiVersion is the AnkiConnect protocol version this client speaks.
const apiVersion = 6

// DefaultURL is the endpoint the AnkiConnect add-on listens on by default.
const DefaultURL = "http://127.0.0.1:8765"

// Client is a thin AnkiConnect JSON client. It carries the HTTP
// plumbing shared by the store implementations in this package.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new AnkiConnect client for the given endpoint URL.
// If url is empty, DefaultURL is used. If logger is nil, a default
// logger will be used.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "ankiconnect")),
	}
}

// request is the AnkiConnect call envelope.
type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

// response is the AnkiConnect reply envelope. Error is a string
// description on failure and null on success.
type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke performs one AnkiConnect action and decodes its result into
// out. Pass a nil out to discard the result. Transport failures are
// wrapped in store.ErrUnavailable; AnkiConnect-reported errors are
// mapped onto the store sentinel taxonomy.
func (c *Client) invoke(ctx context.Context, action string, params any, out any) error {
	body, err := json.Marshal(request{
		Action:  action,
		Version: apiVersion,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("invoking AnkiConnect action", slog.String("action", action))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("AnkiConnect unreachable",
			slog.String("action", action),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %s: %v", store.ErrUnavailable, action, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: unexpected status %d", store.ErrUnavailable, action, resp.StatusCode)
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding %s response: %w", action, err)
	}

	if envelope.Error != nil && *envelope.Error != "" {
		mapped := mapActionError(action, *envelope.Error)
		c.logger.Debug("AnkiConnect action failed",
			slog.String("action", action),
			slog.String("error", *envelope.Error))
		return mapped
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decoding %s result: %w", action, err)
	}
	return nil
}

// Ping verifies the endpoint answers the version action. It is used as
// a startup health check and by the HTTP transport's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var version int
	if err := c.invoke(ctx, "version", nil, &version); err != nil {
		return err
	}
	if version < apiVersion {
		return fmt.Errorf("AnkiConnect version %d is older than required %d", version, apiVersion)
	}
	return nil
}

// mapActionError translates AnkiConnect's error strings into the store
// error taxonomy. Unrecognized messages are preserved verbatim so the
// caller can still log them.
func mapActionError(action, message string) error {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "deck") && strings.Contains(lower, "not found"):
		return fmt.Errorf("%w: %s", store.ErrDeckNotFound, message)
	case strings.Contains(lower, "model") && strings.Contains(lower, "not found"),
		strings.Contains(lower, "notetype") && strings.Contains(lower, "not found"):
		return fmt.Errorf("%w: %s", store.ErrNoteTypeNotFound, message)
	case strings.Contains(lower, "note") && strings.Contains(lower, "not found"):
		return fmt.Errorf("%w: %s", store.ErrNoteNotFound, message)
	case strings.Contains(lower, "card") && strings.Contains(lower, "not found"):
		return fmt.Errorf("%w: %s", store.ErrCardNotFound, message)
	case strings.Contains(lower, "duplicate"):
		return fmt.Errorf("%w: %s", store.ErrDuplicateNote, message)
	default:
		return fmt.Errorf("ankiconnect %s: %s", action, message)
	}
}
