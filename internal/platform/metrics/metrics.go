// Package metrics holds the Prometheus collectors shared across features.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		},
		[]string{"path", "method", "code"},
	)
	duration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "http",
			Name:      "request_duration_seconds",
			Help:      "Request duration",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// ChartBuilds counts chart builds by mode and outcome ("ok" or "error").
	ChartBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stock_dashboard",
			Subsystem: "chart",
			Name:      "builds_total",
			Help:      "Chart series builds",
		},
		[]string{"mode", "outcome"},
	)

	// ChartPoints observes how many points each chart build returns.
	ChartPoints = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "stock_dashboard",
			Subsystem: "chart",
			Name:      "points",
			Help:      "Points per chart series",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000},
		},
	)

	// PredictionCache counts prediction cache lookups by result ("hit" or "miss").
	PredictionCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stock_dashboard",
			Subsystem: "prediction",
			Name:      "cache_lookups_total",
			Help:      "Prediction cache lookups",
		},
		[]string{"result"},
	)

	// Retries counts back-off retries by target ("db", "redis").
	Retries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stock_dashboard",
			Subsystem: "backoff",
			Name:      "retries_total",
			Help:      "Back-off retry attempts",
		},
		[]string{"target"},
	)

	// SymbolRefreshes counts quote refresh runs by outcome.
	SymbolRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stock_dashboard",
			Subsystem: "symbols",
			Name:      "refreshes_total",
			Help:      "Per-symbol quote refreshes",
		},
		[]string{"outcome"},
	)
)

// Middleware records request count and latency labelled by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		requests.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		duration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
