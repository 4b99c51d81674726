package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchasesTotal,
			Help: HelpTextPurchasesTotal,
		},
		[]string{LabelResult},
	)

	StockQuantity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameStockQuantity,
			Help: HelpTextStockQuantity,
		},
		[]string{LabelIngredient},
	)

	RevenueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRevenueTotal,
			Help: HelpTextRevenueTotal,
		},
	)

	OrdersCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrdersCompleted,
			Help: HelpTextOrdersCompleted,
		},
		[]string{LabelRecipe},
	)

	OrdersPickedUp = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrdersPickedUp,
			Help: HelpTextOrdersPickedUp,
		},
		[]string{LabelRecipe},
	)
)

// SetStock mirrors a ledger quantity into the stock gauge
func SetStock(ingredient string, quantity int) {
	StockQuantity.WithLabelValues(ingredient).Set(float64(quantity))
}

// ForgetStock drops the gauge series of a removed ingredient
func ForgetStock(ingredient string) {
	StockQuantity.DeleteLabelValues(ingredient)
}
