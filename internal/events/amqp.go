package events

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/golden-lotus/pos-service/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPBus publishes domain events to a fanout exchange so consumers outside
// the websocket hub (kitchen displays, notifiers) can subscribe.
type AMQPBus struct {
	conn     *amqp.Connection
	exchange string
}

// envelope is the wire format of an AMQP-published event
type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// NewAMQPBus connects to RabbitMQ and declares the event exchange
func NewAMQPBus(cfg config.RabbitMQ) (*AMQPBus, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/", cfg.User, cfg.Password, cfg.Host, cfg.Port)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(cfg.Exchange, "fanout", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPBus{conn: conn, exchange: cfg.Exchange}, nil
}

// Publish sends the event to the exchange. Failures are logged, never
// surfaced; event delivery is best effort.
func (b *AMQPBus) Publish(topic string, payload interface{}) {
	body, err := json.Marshal(envelope{Event: topic, Data: payload})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", topic, err)
		return
	}

	ch, err := b.conn.Channel()
	if err != nil {
		log.Printf("Failed to open channel for %s event: %v", topic, err)
		return
	}
	defer ch.Close()

	err = ch.Publish(b.exchange, topic, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		log.Printf("Failed to publish %s event: %v", topic, err)
	}
}

// Close closes the underlying connection
func (b *AMQPBus) Close() error {
	return b.conn.Close()
}
