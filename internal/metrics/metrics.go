package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pizzeria",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pizzeria",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pizzeria",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	ordersPlaced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pizzeria",
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Total number of orders committed.",
		},
	)

	orderFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pizzeria",
			Subsystem: "orders",
			Name:      "failed_total",
			Help:      "Total number of order submissions rolled back.",
		},
	)

	deliveriesConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pizzeria",
			Subsystem: "deliveries",
			Name:      "confirmed_total",
			Help:      "Total number of pending delivery markers removed.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		ordersPlaced,
		orderFailures,
		deliveriesConfirmed,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Instrument records in-flight, count and duration for every routed request.
// Routes are labelled by their pattern so path parameters do not explode cardinality.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordOrderPlaced counts a committed order
func RecordOrderPlaced() {
	ordersPlaced.Inc()
}

// RecordOrderFailed counts an order submission that was rolled back
func RecordOrderFailed() {
	orderFailures.Inc()
}

// RecordDeliveries counts removed pending delivery markers
func RecordDeliveries(n int64) {
	if n > 0 {
		deliveriesConfirmed.Add(float64(n))
	}
}
