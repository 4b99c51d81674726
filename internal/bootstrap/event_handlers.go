package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/event"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
	"github.com/osse101/CoffeePOS_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the in-process consumers of order events:
// the metrics collector and an audit log line per transition.
func RegisterEventHandlers(bus event.Bus) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	for _, t := range OrderEventTypes {
		bus.Subscribe(t, logOrderEvent)
	}
}

func logOrderEvent(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.OrderEventPayload](evt.Payload)
	if err != nil {
		// audit logging never fails a purchase
		logger.FromContext(ctx).Debug(LogMsgOrderEvent, "type", evt.Type, "error", err)
		return nil
	}
	logger.FromContext(ctx).Info(LogMsgOrderEvent,
		"type", evt.Type,
		"order_id", payload.OrderID,
		"customer", payload.CustomerName,
		"recipe", payload.RecipeName,
		"price", payload.Price)
	return nil
}
