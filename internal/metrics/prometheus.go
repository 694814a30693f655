package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric exported by the application.
const Namespace = "sumbench"

// Recorder exports benchmark measurements on a private Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	elements *prometheus.CounterVec
	active   prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry, including the Go
// runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "strategy_duration_seconds",
			Help:      "Wall-clock time taken by a summation strategy.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"strategy", "size"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Strategy runs by outcome.",
		}, []string{"strategy", "status"}),
		elements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "elements_summed_total",
			Help:      "Array elements summed successfully.",
		}, []string{"strategy"}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "active_runs",
			Help:      "Strategy runs currently in progress.",
		}),
	}
}

// RunStarted marks a strategy run as in progress.
func (r *Recorder) RunStarted(string, int) {
	r.active.Inc()
}

// RunFinished records the outcome of a strategy run.
func (r *Recorder) RunFinished(strategy string, size int, d time.Duration, err error) {
	r.active.Dec()
	if err != nil {
		r.runs.WithLabelValues(strategy, "error").Inc()
		return
	}
	r.runs.WithLabelValues(strategy, "success").Inc()
	r.duration.WithLabelValues(strategy, strconv.Itoa(size)).Observe(d.Seconds())
	r.elements.WithLabelValues(strategy).Add(float64(size))
}

// Registry exposes the underlying registry for HTTP handlers and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes every metric in the Prometheus text format to path,
// suitable for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return errors.New("metrics file path is empty")
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
