package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/osse101/CoffeePOS_Go/internal/logger"
)

// amqpChannel is the subset of *amqp.Channel the publisher uses
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a RabbitMQ topic exchange using the event
// type as routing key.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
}

// DialAMQP connects to the broker, retrying while it starts up, and declares
// a durable topic exchange.
func DialAMQP(ctx context.Context, url, exchange string) (*AMQPPublisher, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	for attempt := 1; attempt <= AMQPDialAttempts; attempt++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		logger.FromContext(ctx).Warn(LogMsgAMQPDialFailed, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(AMQPDialRetryBackoff):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("could not open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,          // name
		ExchangeKindTopic, // type
		true,              // durable
		false,             // auto-deleted
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("could not declare exchange: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgAMQPConnected, "exchange", exchange)
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish sends evt as a persistent JSON message
func (p *AMQPPublisher) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	return p.ch.PublishWithContext(ctx,
		p.exchange,       // exchange
		string(evt.Type), // routing key
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  ContentTypeJSON,
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Type:         string(evt.Type),
			Headers:      amqp.Table{"schema_version": evt.Version},
			Body:         body,
		},
	)
}

// Close releases the channel and connection
func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Forward subscribes to the given event types on bus and hands each event to
// out. Forwarding never fails the publishing side.
func Forward(bus Bus, out *ResilientPublisher, types ...Type) {
	for _, t := range types {
		bus.Subscribe(t, func(ctx context.Context, evt Event) error {
			out.PublishWithRetry(ctx, evt)
			return nil
		})
	}
}
