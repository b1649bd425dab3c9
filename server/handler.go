package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// AcceptHandler upgrades HTTP requests to WebSocket and runs one endpoint per
// socket.
type AcceptHandler struct {
	pubsub      PubSub
	host        *RoomHost
	idleTimeout time.Duration
}

func NewAcceptHandler(pubsub PubSub, host *RoomHost, idleTimeout time.Duration) *AcceptHandler {
	return &AcceptHandler{
		pubsub:      pubsub,
		host:        host,
		idleTimeout: idleTimeout,
	}
}

func (h *AcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to accept websocket connection", "err", err)
		return
	}

	session := NewSession()
	endpoint, err := NewEndpoint(session, NewWebsocketTransport(conn), h.pubsub, h.host, h.idleTimeout)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build endpoint", "err", err)
		_ = conn.Close(websocket.StatusInternalError, "initialization failed")
		return
	}

	slog.InfoContext(ctx, "session connected", "sessionID", session.ID())
	if err := endpoint.Run(); err != nil {
		slog.WarnContext(ctx, "session ended with error", "sessionID", session.ID(), "err", err)
	}
	slog.InfoContext(ctx, "session closed", "sessionID", session.ID())
}
