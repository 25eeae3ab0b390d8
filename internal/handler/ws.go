package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"focusportal/internal/broadcast"
)

// WSHandler upgrades clients onto the shared feed topic. Connected
// clients receive every question and comment event as JSON frames.
type WSHandler struct {
	hub    *broadcast.Hub
	topic  string
	logger *slog.Logger

	upgrader websocket.Upgrader
}

// NewWSHandler creates a new websocket handler for the given topic.
// Origin checks are handled by the CORS middleware upstream.
func NewWSHandler(hub *broadcast.Hub, topic string, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		hub:    hub,
		topic:  topic,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.hub.AttachConn(h.topic, conn)
	h.logger.Debug("websocket client connected", "remote", conn.RemoteAddr().String())

	// Read pump. Clients never send application frames; this loop only
	// notices disconnects and answers control frames.
	go func() {
		defer h.hub.DetachConn(h.topic, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.logger.Debug("websocket client disconnected", "remote", conn.RemoteAddr().String())
				return
			}
		}
	}()
}
