package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNamePurchasesTotal  = "coffeepos_purchases_total"
	MetricNameStockQuantity   = "coffeepos_stock_quantity"
	MetricNameRevenueTotal    = "coffeepos_revenue_total"
	MetricNameOrdersCompleted = "coffeepos_orders_completed_total"
	MetricNameOrdersPickedUp  = "coffeepos_orders_picked_up_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextPurchasesTotal  = "Purchase attempts by outcome"
	HelpTextStockQuantity   = "Units on hand per ingredient"
	HelpTextRevenueTotal    = "Sum of recipe prices over settled purchases"
	HelpTextOrdersCompleted = "Orders marked complete by staff"
	HelpTextOrdersPickedUp  = "Orders handed over to customers"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelResult     = "result"
	LabelIngredient = "ingredient"
	LabelRecipe     = "recipe"
)

// Purchase result label values
const (
	ResultSettled             = "settled"
	ResultUnauthorized        = "unauthorized"
	ResultNotFound            = "not_found"
	ResultInvalid             = "invalid"
	ResultInsufficientPayment = "insufficient_payment"
	ResultInsufficientStock   = "insufficient_stock"
	ResultError               = "error"
)

// HTTPLatencyBuckets ranges from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
