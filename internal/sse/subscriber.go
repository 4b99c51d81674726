package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe relays every event of the given order types to the hub
func (s *Subscriber) Subscribe(types ...event.Type) {
	names := make([]string, 0, len(types))
	for _, t := range types {
		s.bus.Subscribe(t, s.handleOrderEvent)
		names = append(names, string(t))
	}
	slog.Info(LogMsgSubscribed, "types", names)
}

func (s *Subscriber) handleOrderEvent(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[domain.OrderEventPayload](evt.Payload)
	if err != nil {
		// a bad payload must not fail the purchase that published it
		slog.Warn(LogMsgUnexpectedPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(string(evt.Type), payload)

	slog.Debug(LogMsgEventBroadcast,
		"event_type", evt.Type,
		"order_id", payload.OrderID,
		"recipe", payload.RecipeName)

	return nil
}
