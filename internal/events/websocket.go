package events

import (
	"encoding/json"
	"log"

	"github.com/golden-lotus/pos-service/internal/websockets"
)

// WebSocketBus broadcasts domain events to every connected websocket client
type WebSocketBus struct {
	hub *websockets.Hub
}

func NewWebSocketBus(hub *websockets.Hub) *WebSocketBus {
	return &WebSocketBus{hub: hub}
}

func (b *WebSocketBus) Publish(topic string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", topic, err)
		return
	}

	message, err := json.Marshal(websockets.Message{Type: topic, Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s envelope: %v", topic, err)
		return
	}

	b.hub.Broadcast(message)
}
