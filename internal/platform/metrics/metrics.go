package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ExchangeMetrics holds all Prometheus instruments for the quoting and order
// lifecycle flows.
type ExchangeMetrics struct {
	QuotesTotal           prometheus.CounterVec
	QuoteErrorsTotal      prometheus.CounterVec
	OrdersCreatedTotal    prometheus.CounterVec
	OrderTransitionsTotal prometheus.CounterVec
	OrdersExpiredTotal    prometheus.Counter
	RateFeedUpdatesTotal  prometheus.CounterVec
	RateFeedDuration      prometheus.Histogram
}

// NewExchangeMetrics registers the metric set with reg and returns it. Tests
// pass a throwaway registry so repeated construction never collides.
func NewExchangeMetrics(reg prometheus.Registerer) *ExchangeMetrics {
	factory := promauto.With(reg)
	return &ExchangeMetrics{
		QuotesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_quotes_total",
				Help: "Total number of successfully computed quotes",
			},
			[]string{"from_currency", "to_currency"},
		),
		QuoteErrorsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_quote_errors_total",
				Help: "Total number of rejected quote requests",
			},
			[]string{"error_kind"},
		),
		OrdersCreatedTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_orders_created_total",
				Help: "Total number of created orders",
			},
			[]string{"from_currency", "to_currency"},
		),
		OrderTransitionsTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_order_transitions_total",
				Help: "Total number of committed order status transitions",
			},
			[]string{"target_status"},
		),
		OrdersExpiredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "exchange_orders_expired_total",
				Help: "Total number of orders expired by the sweeper or on read",
			},
		),
		RateFeedUpdatesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_rate_feed_updates_total",
				Help: "Total number of rate snapshots written by the feed",
			},
			[]string{"source"},
		),
		RateFeedDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "exchange_rate_feed_duration_seconds",
				Help:    "Duration of one rate feed refresh cycle",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
		),
	}
}

// RecordQuote records a successful quote.
func (m *ExchangeMetrics) RecordQuote(from, to string) {
	m.QuotesTotal.WithLabelValues(from, to).Inc()
}

// RecordQuoteError records a rejected quote request by error kind.
func (m *ExchangeMetrics) RecordQuoteError(kind string) {
	m.QuoteErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordOrderCreated records a persisted order.
func (m *ExchangeMetrics) RecordOrderCreated(from, to string) {
	m.OrdersCreatedTotal.WithLabelValues(from, to).Inc()
}

// RecordTransition records a committed status transition.
func (m *ExchangeMetrics) RecordTransition(target string) {
	m.OrderTransitionsTotal.WithLabelValues(target).Inc()
}

// RecordExpired records n orders flipped to expired.
func (m *ExchangeMetrics) RecordExpired(n int64) {
	m.OrdersExpiredTotal.Add(float64(n))
}

// RecordRateFeedUpdate records one rate snapshot written by the feed.
func (m *ExchangeMetrics) RecordRateFeedUpdate(source string) {
	m.RateFeedUpdatesTotal.WithLabelValues(source).Inc()
}

// RecordRateFeedCycle records the duration of a refresh cycle.
func (m *ExchangeMetrics) RecordRateFeedCycle(seconds float64) {
	m.RateFeedDuration.Observe(seconds)
}
