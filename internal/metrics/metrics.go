// Package metrics provides Prometheus metrics collection for the menu
// order service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// OrderGenerationsTotal tracks order generations by outcome.
	OrderGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_generations_total",
			Help: "Total number of order generation requests",
		},
		[]string{"status"},
	)

	// OrderGenerationDuration tracks order generation duration.
	OrderGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_generation_duration_seconds",
			Help:    "Order generation duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
	)

	// OrderLinesPerOrder tracks how many lines generated orders carry.
	OrderLinesPerOrder = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_lines_per_order",
			Help:    "Number of lines per generated order",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordOrderGeneration records the outcome of one generation request.
func RecordOrderGeneration(duration time.Duration, status string) {
	OrderGenerationsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		OrderGenerationDuration.Observe(duration.Seconds())
	}
}

// ObserveOrderLines records how many lines a persisted order carries.
func ObserveOrderLines(count int) {
	OrderLinesPerOrder.Observe(float64(count))
}
