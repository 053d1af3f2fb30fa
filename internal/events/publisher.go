// Package events publishes booking and review lifecycle events to an
// AMQP topic exchange. Publishing is strictly best-effort: the broker
// being down must never fail the request that produced the event.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const exchange = "hireachef.events"

// Event is the wire shape published for every lifecycle change.
type Event struct {
	Type       string    `json:"type"` // e.g. booking.created, booking.status_changed
	OccurredAt time.Time `json:"occurred_at"`
	BookingID  uuid.UUID `json:"booking_id,omitempty"`
	ChefID     uuid.UUID `json:"chef_id,omitempty"`
	UserID     uuid.UUID `json:"user_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Detail     string    `json:"detail,omitempty"`
}

// Publisher wraps an AMQP connection. A nil *Publisher is valid and
// drops every event, so callers never branch on configuration.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to the broker and declares the topic exchange.
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Publish sends an event with its type as the routing key. Errors are
// logged and swallowed.
func (p *Publisher) Publish(ctx context.Context, ev Event) {
	if p == nil || p.ch == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[events] failed to marshal %s event: %v", ev.Type, err)
		return
	}
	err = p.ch.PublishWithContext(ctx, exchange, ev.Type, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		log.Printf("[events] failed to publish %s event: %v", ev.Type, err)
	}
}
