// Package publisher delivers domain events to downstream consumers.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

const SeatSoldQueue = "seat.sold"

// RabbitMQPublisher keeps one broker connection and opens a short lived
// channel per message, since channels must not be shared between goroutines.
type RabbitMQPublisher struct {
	conn  *amqp.Connection
	queue string
}

func DialRabbitMQ(url string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	return &RabbitMQPublisher{conn: conn, queue: SeatSoldQueue}, nil
}

func (p *RabbitMQPublisher) PublishSeatSold(ctx context.Context, event domain.SeatSoldEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	pub, err := NewSeatSoldPublishing(event)
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

func (p *RabbitMQPublisher) Close() error {
	return p.conn.Close()
}

// NewSeatSoldPublishing builds the persistent JSON message for event.
func NewSeatSoldPublishing(event domain.SeatSoldEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal seat sold event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.MessageID.String(),
		Timestamp:    event.SoldAt,
		Type:         SeatSoldQueue,
		Body:         body,
	}, nil
}

// LogPublisher is used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) PublishSeatSold(_ context.Context, event domain.SeatSoldEvent) error {
	log.Info().
		Str("message_id", event.MessageID.String()).
		Int64("seat_id", event.SeatID).
		Int64("event_id", event.EventID).
		Int64("user_id", event.UserID).
		Msg("seat sold event (no broker configured)")
	return nil
}
