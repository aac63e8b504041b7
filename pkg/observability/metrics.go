// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the vorlesung server.
package observability

import "github.com/prometheus/client_golang/prometheus"

// RequestBuckets defines histogram buckets for request latencies, ranging
// from 5ms (static assets) to 30s (upstream catalog calls under load).
var RequestBuckets = []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

var (
	// RequestsTotal counts all HTTP requests by method, path, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vorlesung_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method and path.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vorlesung_request_duration_seconds",
			Help:    "Request duration",
			Buckets: RequestBuckets,
		},
		[]string{"method", "path"},
	)

	// SSESessionsActive tracks the number of open SSE sessions.
	SSESessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vorlesung_sse_sessions_active",
			Help: "Active SSE sessions",
		},
	)

	// ToolExecutionsTotal counts tool executions by name and outcome.
	ToolExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vorlesung_tool_executions_total",
			Help: "Tool executions",
		},
		[]string{"tool_name", "status"},
	)

	// CatalogRequestsTotal counts course searches by data source and outcome.
	// source is "live" or "mock"; status is "ok" or "unavailable".
	CatalogRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vorlesung_catalog_requests_total",
			Help: "Catalog searches",
		},
		[]string{"source", "status"},
	)

	// TokenRefreshTotal counts OAuth token exchanges by outcome.
	TokenRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vorlesung_token_refresh_total",
			Help: "OAuth token exchanges",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		SSESessionsActive,
		ToolExecutionsTotal,
		CatalogRequestsTotal,
		TokenRefreshTotal,
	)
}
