package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "botboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "botboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	// Bot operation metrics
	BotOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "botboard_bot_operations_total",
			Help: "Total number of bot CRUD operations",
		},
		[]string{"operation", "status"}, // operation: create|update|toggle|delete
	)

	// Market data metrics
	QuoteLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "botboard_quote_lookups_total",
			Help: "Total number of asset quote lookups",
		},
		[]string{"provider", "status"}, // status: success|error
	)

	QuoteLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "botboard_quote_latency_seconds",
			Help:    "Quote lookup latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"provider"},
	)

	// Auth metrics
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "botboard_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"}, // status: success|invalid|rate_limited
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
	prometheus.MustRegister(BotOperations)
	prometheus.MustRegister(QuoteLookups)
	prometheus.MustRegister(QuoteLatency)
	prometheus.MustRegister(LoginAttempts)
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveQuote records a quote lookup outcome with latency
func ObserveQuote(provider string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	QuoteLookups.WithLabelValues(provider, status).Inc()
	QuoteLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
