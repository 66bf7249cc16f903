package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHTTPHandlerHealthz(t *testing.T) {
	mcpServer := New(Services{
		Decks:   &MockDeckService{},
		Cards:   &MockCardService{},
		Reviews: &MockReviewService{},
		Imports: &MockImportService{},
	}, "Try! N3 Vocab", nil)

	t.Run("healthy", func(t *testing.T) {
		handler := NewHTTPHandler(mcpServer, &stubPinger{}, nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rec.Code, "Expected 200 when the gateway responds")
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("collection down", func(t *testing.T) {
		handler := NewHTTPHandler(mcpServer, &stubPinger{err: errors.New("connection refused")}, nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code,
			"Expected 503 when the gateway is unreachable")
	})
}
