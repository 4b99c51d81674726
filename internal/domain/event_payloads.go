package domain

// OrderEventPayload is the event payload for all order.* events
type OrderEventPayload struct {
	OrderID      string `json:"order_id"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	RecipeName   string `json:"recipe_name"`
	Price        int    `json:"price"`
	Timestamp    int64  `json:"timestamp"`
}

// NewOrderEventPayload snapshots an order for publication
func NewOrderEventPayload(o Order, timestamp int64) OrderEventPayload {
	return OrderEventPayload{
		OrderID:      o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		RecipeName:   o.RecipeName,
		Price:        o.Price,
		Timestamp:    timestamp,
	}
}
