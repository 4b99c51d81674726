package inventory

// Log messages
const (
	LogMsgLedgerLoaded      = "Inventory ledger loaded"
	LogMsgStockSet          = "Stock set"
	LogMsgBulkIncrement     = "Stock incremented"
	LogMsgConsumed          = "Stock consumed"
	LogMsgConsumeRejected   = "Insufficient stock for recipe"
	LogMsgIngredientRemoved = "Ingredient removed from ledger"
)

// Error detail formats
const (
	ErrFmtNegativeAmount = "%w: %s for %s (got %d)"
	ErrFmtOverflow       = "%w: %s would exceed %d"
)
