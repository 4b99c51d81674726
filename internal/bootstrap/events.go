package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/CoffeePOS_Go/internal/config"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/event"
)

// Broker is the outbound side of the event system: order events forwarded to
// RabbitMQ with retries and a dead-letter file.
type Broker struct {
	Publisher *event.ResilientPublisher
	conn      *event.AMQPPublisher
}

// OrderEventTypes are the events forwarded to the broker
var OrderEventTypes = []event.Type{
	domain.EventTypeOrderPlaced,
	domain.EventTypeOrderCompleted,
	domain.EventTypeOrderPickedUp,
}

// InitializeEventSystem connects the broker when AMQP_URL is set and forwards
// every order event from bus to it. Without a URL it returns nil and events
// stay in process.
func InitializeEventSystem(ctx context.Context, cfg *config.Config, bus event.Bus) (*Broker, error) {
	if cfg.AMQPURL == "" {
		slog.Info(LogMsgBrokerDisabled)
		return nil, nil
	}

	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}
	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	conn, err := event.DialAMQP(ctx, cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectBroker, err)
	}

	publisher, err := event.NewResilientPublisher(conn, EventDefaultMaxRetries, EventDefaultRetryDelay, deadLetterPath)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	event.Forward(bus, publisher, OrderEventTypes...)

	slog.Info(LogMsgEventSystemInitialized,
		"exchange", cfg.AMQPExchange,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return &Broker{Publisher: publisher, conn: conn}, nil
}
