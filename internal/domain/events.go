package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "order.placed")
const (
	// EventTypeOrderPlaced is published when a purchase settles
	EventTypeOrderPlaced = "order.placed"

	// EventTypeOrderCompleted is published when staff marks an order as made
	EventTypeOrderCompleted = "order.completed"

	// EventTypeOrderPickedUp is published when an order is handed over
	EventTypeOrderPickedUp = "order.picked_up"
)
