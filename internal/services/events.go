package services

import (
	"encoding/json"
	"log"
	"time"
)

// Routing keys for catalog events.
const (
	EventUserRegistered = "user.registered"
	EventProductCreated = "product.created"
)

// EventPublisher publishes a message to a broker exchange.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Events routes catalog events to a publisher. A nil *Events publishes nothing.
type Events struct {
	Publisher EventPublisher
	Exchange  string
}

type event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// publish delivers an event on a best-effort basis. Failures are logged and
// never fail the operation that triggered them.
func (e *Events) publish(routingKey string, data interface{}) {
	if e == nil || e.Publisher == nil {
		return
	}
	body, err := json.Marshal(event{Type: routingKey, OccurredAt: time.Now().UTC(), Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := e.Publisher.Publish(e.Exchange, routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
