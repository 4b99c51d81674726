package metrics

import (
	"context"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/event"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all order events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{
		domain.EventTypeOrderPlaced,
		domain.EventTypeOrderCompleted,
		domain.EventTypeOrderPickedUp,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	payload, err := event.DecodePayload[domain.OrderEventPayload](evt.Payload)
	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
		return nil
	}

	switch evt.Type {
	case domain.EventTypeOrderPlaced:
		RevenueTotal.Add(float64(payload.Price))
	case domain.EventTypeOrderCompleted:
		OrdersCompleted.WithLabelValues(payload.RecipeName).Inc()
	case domain.EventTypeOrderPickedUp:
		OrdersPickedUp.WithLabelValues(payload.RecipeName).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
