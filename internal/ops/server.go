// Package ops is the HTTP side surface: health and status probes, plus the
// websocket entry point for browser clients speaking the same JSON protocol.
package ops

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/hdp1213/billionaire/internal/game"
	"github.com/hdp1213/billionaire/internal/transport"
)

const statusTimeout = time.Second * 2

// Handler serves the ops routes. Game state is only ever read through the
// actor's status channel.
type Handler struct {
	game     *game.Server
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewHandler(gameServer *game.Server, log zerolog.Logger) *Handler {
	return &Handler{
		game: gameServer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients connect from anywhere; the game has no browser-origin
			// trust model to enforce.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log.With().Str("component", "ops").Logger(),
	}
}

// Router builds the gin engine with all ops routes registered.
func (h *Handler) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", h.HealthHandler)
	r.GET("/status", h.StatusHandler)
	r.GET("/ws", h.WebsocketHandler)

	return r
}

func (h *Handler) HealthHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) StatusHandler(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), statusTimeout)
	defer cancel()

	status, ok := h.game.Status(reqCtx)
	if !ok {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "status unavailable"})
		return
	}

	ctx.JSON(http.StatusOK, status)
}

// WebsocketHandler upgrades the request and hands the connection to the game
// server like any accepted TCP client.
func (h *Handler) WebsocketHandler(ctx *gin.Context) {
	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Str("remote_addr", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	h.game.Accept(transport.NewWebsocketConn(conn))
}
