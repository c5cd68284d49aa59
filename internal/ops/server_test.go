package ops

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdp1213/billionaire/internal/game"
)

func newTestHandler(t *testing.T, runActor bool) *Handler {
	t.Helper()

	gameServer := game.NewServer(game.Config{
		PlayerLimit:     2,
		HasBillionaire:  true,
		HasTaxCollector: true,
	}, zerolog.Nop())

	if runActor {
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		go gameServer.Run(ctx)
	}

	return NewHandler(gameServer, zerolog.Nop())
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	h.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestStatusHandler(t *testing.T) {
	h := newTestHandler(t, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	h.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"running": false, "players": 0, "player_limit": 2}`, w.Body.String())
}

func TestStatusHandler_ActorUnavailable(t *testing.T) {
	h := newTestHandler(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil).
		WithContext(expiredContext(t))
	h.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func expiredContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
