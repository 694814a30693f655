package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/sumbench/internal/metrics"
)

// Metrics tracks HTTP traffic on the recorder's registry and serves the
// whole registry.
type Metrics struct {
	activeRequests prometheus.Gauge
	totalRequests  *prometheus.CounterVec
	handler        http.Handler
}

// NewMetrics registers the HTTP metrics on rec's registry.
func NewMetrics(rec *metrics.Recorder) *Metrics {
	reg := rec.Registry()
	factory := promauto.With(reg)
	return &Metrics{
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Name:      "http_active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		totalRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by path.",
		}, []string{"path"}),
		handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}
}

// IncrementActiveRequests marks a request as in flight.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks a request as done.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// CountRequest counts a served request for path.
func (m *Metrics) CountRequest(path string) { m.totalRequests.WithLabelValues(path).Inc() }

// WritePrometheus writes the registry in the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
