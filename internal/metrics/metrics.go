// Package metrics registers the Prometheus series of the fulfillment service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// FulfillmentsTotal counts outbound orders by final state and, for
	// rejections, by the first error kind.
	FulfillmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipit_fulfillments_total",
			Help: "Outbound orders processed, by outcome",
		},
		[]string{"outcome"},
	)

	FulfillmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shipit_fulfillment_duration_seconds",
			Help:    "End to end outbound order duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
	)

	TrucksPerOrder = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shipit_trucks_per_order",
			Help:    "Trucks used by confirmed outbound orders",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)

	UnitsReservedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shipit_units_reserved_total",
			Help: "Units removed from stock by confirmed outbound orders",
		},
	)

	RestockLinesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shipit_restock_lines_total",
			Help: "Inbound order lines proposed by restock plans",
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipit_events_published_total",
			Help: "Fulfillment events handed to the broker, by result",
		},
		[]string{"topic", "result"},
	)

	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected with 429 by limiter scope",
		},
		[]string{"scope"},
	)

	PanicsRecoveredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_panics_recovered_total",
			Help: "Handler panics turned into 500 responses",
		},
		[]string{"path"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 open, 2 half-open",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware records request count and latency per route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, statusCode).Inc()
	}
}

// RecordFulfillment records an outbound order outcome. trucks and units are
// only observed for confirmed orders.
func RecordFulfillment(duration time.Duration, outcome string, trucks, units int) {
	FulfillmentDuration.Observe(duration.Seconds())
	FulfillmentsTotal.WithLabelValues(outcome).Inc()
	if outcome == "confirmed" {
		TrucksPerOrder.Observe(float64(trucks))
		UnitsReservedTotal.Add(float64(units))
	}
}

// RecordRestockPlan counts proposed inbound lines.
func RecordRestockPlan(lines int) {
	RestockLinesTotal.Add(float64(lines))
}

// RecordEventPublish counts a broker write.
func RecordEventPublish(topic, result string) {
	EventsPublishedTotal.WithLabelValues(topic, result).Inc()
}

// RecordCacheOperation counts a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// RecordRateLimited counts a throttled request. scope is ip or warehouse.
func RecordRateLimited(scope string) {
	RateLimitedTotal.WithLabelValues(scope).Inc()
}

// RecordPanic counts a recovered handler panic.
func RecordPanic(path string) {
	PanicsRecoveredTotal.WithLabelValues(path).Inc()
}

// SetCircuitBreakerState publishes a breaker state as a gauge value.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
