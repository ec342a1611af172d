// AngelaMos | 2026
// metrics.go

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics holds the request-level Prometheus collectors.
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// authFailures is package-level so the authenticator can count rejections
// by reason. Expired and invalid tokens both surface as 401 to clients,
// but this label keeps them distinguishable server-side.
var authFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "copperline_auth_failures_total",
	Help: "Authentication failures by reason",
}, []string{"reason"})

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "copperline_http_requests_total",
			Help: "Total HTTP requests by method and status",
		}, []string{"method", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "copperline_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

func (m *HTTPMetrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		m.RequestsTotal.WithLabelValues(
			r.Method,
			strconv.Itoa(rec.status),
		).Inc()
		m.RequestDuration.WithLabelValues(r.Method).
			Observe(time.Since(start).Seconds())
	})
}
