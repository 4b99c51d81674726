package order

// Log messages
const (
	LogMsgOrderCompleted = "Order completed"
	LogMsgOrderPickedUp  = "Order picked up"
	LogMsgPublishFailed  = "Failed to publish order event"
)

// Error detail formats
const (
	ErrFmtOrderState = "%w: %s (%s)"
	ErrFmtNotOwner   = "%w: order %s belongs to another customer"
)

// Storage operation names
const (
	opGetOrder   = "get order"
	opListOrders = "list orders"
	opSaveOrder  = "save order"
)
