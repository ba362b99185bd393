package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// TicketTransitions counts lifecycle moves by action so the dashboard
	// can chart throughput per stage.
	TicketTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_transitions_total",
			Help: "Total ticket lifecycle transitions by action",
		},
		[]string{"action"},
	)
)

// InitMetrics registers the collectors with the default registry.
// Call once at startup, before serving traffic.
func InitMetrics() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, TicketTransitions)
}

// Metrics returns a middleware that records request counts and latency.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		writer := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(writer, r)

		duration := time.Since(start)
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(writer.status)).Inc()
		httpRequestDuration.WithLabelValues(r.URL.Path).Observe(duration.Seconds())
	})
}
