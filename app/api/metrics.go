package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks preview server traffic.
type Metrics struct {
	// Requests by route and status code
	Requests *prometheus.CounterVec

	// Handler latency by route
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the server metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "devto_feed_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "devto_feed_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
	}
}

// Middleware records every request. Unmatched paths share one route label.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.Requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
