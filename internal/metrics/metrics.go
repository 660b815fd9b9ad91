package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics of the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	FetchTotal       *prometheus.CounterVec   // labels: source, status
	CacheLookups     *prometheus.CounterVec   // labels: cache, result
	ComputeDur       *prometheus.HistogramVec // labels: engine
	InsufficientData *prometheus.CounterVec   // labels: engine
	TaskRuns         *prometheus.CounterVec   // labels: task, status
}

// NewMetrics creates and registers all metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketpulse_fetch_total",
			Help: "Market data fetches by source and outcome",
		}, []string{"source", "status"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketpulse_cache_lookups_total",
			Help: "Candle cache lookups by cache and result",
		}, []string{"cache", "result"}),
		ComputeDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "marketpulse_compute_duration_seconds",
			Help:    "Analytics engine compute latency",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}, []string{"engine"}),
		InsufficientData: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketpulse_insufficient_data_total",
			Help: "Engine runs skipped because the history was shorter than the period",
		}, []string{"engine"}),
		TaskRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketpulse_task_runs_total",
			Help: "Scheduled task runs by task and outcome",
		}, []string{"task", "status"}),
	}
	m.Registry.MustRegister(
		m.FetchTotal, m.CacheLookups, m.ComputeDur, m.InsufficientData, m.TaskRuns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) ObserveFetch(source string, err error) {
	if m == nil {
		return
	}
	m.FetchTotal.WithLabelValues(source, status(err)).Inc()
}

func (m *Metrics) ObserveCache(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(cache, result).Inc()
}

func (m *Metrics) ObserveCompute(engine string, start time.Time) {
	if m == nil {
		return
	}
	m.ComputeDur.WithLabelValues(engine).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveInsufficient(engine string) {
	if m == nil {
		return
	}
	m.InsufficientData.WithLabelValues(engine).Inc()
}

func (m *Metrics) ObserveTask(task string, err error) {
	if m == nil {
		return
	}
	m.TaskRuns.WithLabelValues(task, status(err)).Inc()
}
