package ankiconnect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/anki-mcp/internal/store"
)

// actionFunc scripts one AnkiConnect action for the test server.
// It returns the result value and an error string ("" for success).
type actionFunc func(t *testing.T, params json.RawMessage) (any, string)

// newTestServer starts an httptest server speaking the AnkiConnect
// envelope, routing each action to its scripted handler.
func newTestServer(t *testing.T, actions map[string]actionFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Action  string          `json:"action"`
			Version int             `json:"version"`
			Params  json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 6, req.Version, "Client should speak protocol version 6")

		handler, ok := actions[req.Action]
		require.True(t, ok, "Unexpected action %q", req.Action)

		result, errMsg := handler(t, req.Params)
		reply := map[string]any{"result": result, "error": nil}
		if errMsg != "" {
			reply["result"] = nil
			reply["error"] = errMsg
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, actions map[string]actionFunc) *Client {
	t.Helper()
	srv := newTestServer(t, actions)
	return NewClient(srv.URL, 5*time.Second, nil)
}

func TestClientPing(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, map[string]actionFunc{
		"version": func(t *testing.T, _ json.RawMessage) (any, string) {
			return 6, ""
		},
	})

	require.NoError(t, client.Ping(context.Background()))
}

func TestClientPingOldVersion(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, map[string]actionFunc{
		"version": func(t *testing.T, _ json.RawMessage) (any, string) {
			return 4, ""
		},
	})

	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "older than required")
}

func TestClientUnreachable(t *testing.T) {
	t.Parallel()

	// Point at a server that is already closed.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	err := client.Ping(context.Background())
	assert.ErrorIs(t, err, store.ErrUnavailable,
		"Transport failures should map to ErrUnavailable")
}

func TestClientNonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, time.Second, nil)
	err := client.Ping(context.Background())
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestClientDefaultURL(t *testing.T) {
	t.Parallel()

	client := NewClient("", time.Second, nil)
	assert.Equal(t, DefaultURL, client.url,
		"Empty URL should fall back to the AnkiConnect default")
}

func TestMapActionError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    error
	}{
		{
			name:    "deck not found",
			message: "deck was not found: Nonexistent",
			want:    store.ErrDeckNotFound,
		},
		{
			name:    "model not found",
			message: "model was not found: Japanese (recognition)",
			want:    store.ErrNoteTypeNotFound,
		},
		{
			name:    "note not found",
			message: "note was not found: 123",
			want:    store.ErrNoteNotFound,
		},
		{
			name:    "card not found",
			message: "card was not found: 456",
			want:    store.ErrCardNotFound,
		},
		{
			name:    "duplicate note",
			message: "cannot create note because it is a duplicate",
			want:    store.ErrDuplicateNote,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := mapActionError("test", tt.message)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.message,
				"Original message should be preserved for logging")
		})
	}

	// Unknown messages stay generic but keep the action name.
	err := mapActionError("sync", "some unexpected failure")
	assert.False(t, store.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "sync")
}
