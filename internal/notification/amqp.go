package notification

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	createdRoutingKey  = "appointment.created"
	canceledRoutingKey = "appointment.canceled"
)

// AMQPPublisher publishes appointment events to a topic exchange.
// The notification dispatcher consumes them on the other side.
type AMQPPublisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewAMQPPublisher opens a channel on the given connection and declares
// the topic exchange.
func NewAMQPPublisher(conn *amqp.Connection, exchange string) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open amqp channel failed: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange %s failed: %w", exchange, err)
	}

	return &AMQPPublisher{ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) AppointmentCreated(ctx context.Context, evt AppointmentEvent) error {
	return p.publish(ctx, createdRoutingKey, evt)
}

func (p *AMQPPublisher) AppointmentCanceled(ctx context.Context, evt AppointmentEvent) error {
	return p.publish(ctx, canceledRoutingKey, evt)
}

func (p *AMQPPublisher) publish(ctx context.Context, routingKey string, evt AppointmentEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event failed: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s failed: %w", routingKey, err)
	}
	return nil
}

// Close releases the underlying channel.
func (p *AMQPPublisher) Close() error {
	return p.ch.Close()
}
