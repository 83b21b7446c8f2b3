// Package events carries domain events from the order lifecycle engine to
// connected clients. Publishing is fire-and-forget: a bus must never block or
// fail the mutating operation that triggered it.
package events

// Topics published by the order lifecycle engine
const (
	TopicOrderCreated       = "order-created"
	TopicOrderStatusChanged = "order-status-changed"
	TopicOrderUpdated       = "order-updated"
)

// Bus publishes a domain event to its subscribers
type Bus interface {
	Publish(topic string, payload interface{})
}

// MultiBus fans a publish out to several buses
type MultiBus []Bus

func (m MultiBus) Publish(topic string, payload interface{}) {
	for _, b := range m {
		b.Publish(topic, payload)
	}
}
