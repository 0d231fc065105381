// Package events publishes order lifecycle events to RabbitMQ. The broker is
// optional; with no AMQP URL configured every publish is a no-op, so callers
// never need to branch on whether eventing is enabled.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/Hamza287/brenvick-dashboard/internal/models"
)

// OrderStatusEvent is the message emitted when an admin changes an order's
// status. Consumers (fulfilment, notifications) key off the numeric status.
type OrderStatusEvent struct {
	OrderID    string             `json:"orderId"`
	OldStatus  models.OrderStatus `json:"oldStatus"`
	NewStatus  models.OrderStatus `json:"newStatus"`
	ChangedBy  int                `json:"changedBy"`
	OccurredAt time.Time          `json:"occurredAt"`
}

// Publisher pushes events onto a durable queue. A nil Publisher is valid and
// drops everything.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewPublisher connects to the broker and declares the queue. An empty URL
// returns (nil, nil): eventing disabled.
func NewPublisher(url, queue string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &Publisher{conn: conn, channel: ch, queue: queue}, nil
}

// PublishOrderStatus emits an order status change. Failures are logged, not
// returned: the status update already succeeded upstream and must not be
// reported as failed because the broker hiccuped.
func (p *Publisher) PublishOrderStatus(ctx context.Context, event OrderStatusEvent) {
	if p == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("order_id", event.OrderID).Msg("[EVENTS] Failed to marshal order status event")
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(pubCtx,
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		log.Error().Err(err).Str("order_id", event.OrderID).Msg("[EVENTS] Failed to publish order status event")
		return
	}

	log.Info().
		Str("order_id", event.OrderID).
		Str("new_status", event.NewStatus.String()).
		Msg("[EVENTS] Order status event published")
}

// Close releases the channel and connection. Safe on nil.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
