package fulfillment

// Stage is a step of the purchase state machine
type Stage string

// Purchase stages. Settled and Rejected are terminal.
const (
	StageRequested  Stage = "requested"
	StageAuthorized Stage = "authorized"
	StagePriced     Stage = "priced"
	StageSettled    Stage = "settled"
	StageRejected   Stage = "rejected"
)

// Log messages
const (
	LogMsgPurchaseRejected = "Purchase rejected"
	LogMsgPurchaseSettled  = "Purchase settled"
	LogMsgPublishFailed    = "Failed to publish order event"
)

// Error detail formats
const (
	ErrFmtNegativeAmount    = "%w: %s (got %d)"
	ErrFmtInsufficientPay   = "%w: %s costs %d, paid %d"
	ErrFmtInsufficientStock = "%w: cannot make %s"
)
