package handler

import (
	"net/http"

	"github.com/golden-lotus/pos-service/internal/websockets"
)

// WebSocketHandler upgrades connections into the broadcast hub
type WebSocketHandler struct {
	hub *websockets.Hub
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(hub *websockets.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// HandleWebSocket handles WebSocket connections
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	conn, err := websockets.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the error to the response
		return
	}

	websockets.ServeWs(h.hub, conn, userID)
}
