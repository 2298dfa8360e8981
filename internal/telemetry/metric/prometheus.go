// Package metric provides Prometheus metrics for the mapkit workbench.
package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mapkit"

// Registry holds all workbench metrics.
type Registry struct {
	registry *prometheus.Registry

	// Operation metrics
	OpsTotal   *prometheus.CounterVec
	OpDuration *prometheus.HistogramVec

	// Container metrics
	RejectionsTotal *prometheus.CounterVec
	SweepRemovals   prometheus.Counter

	// Run metrics
	RunsTotal   prometheus.Counter
	RunDuration prometheus.Histogram
}

// NewRegistry creates a new metrics registry with all workbench
// metrics registered, plus the standard Go and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		registry: reg,
		OpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ops_total",
			Help:      "Total container operations executed, by container and operation.",
		}, []string{"container", "op"}),
		OpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "op_duration_seconds",
			Help:      "Container operation latency in seconds.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"container", "op"}),
		RejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_inserts_total",
			Help:      "Inserts rejected by capacity-bounded containers.",
		}, []string{"container"}),
		SweepRemovals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_removals_total",
			Help:      "Entries removed by sweep passes.",
		}),
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed workbench runs.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Workbench run duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	reg.MustRegister(
		r.OpsTotal,
		r.OpDuration,
		r.RejectionsTotal,
		r.SweepRemovals,
		r.RunsTotal,
		r.RunDuration,
	)

	return r
}

// RecordOp increments the operation counter for a container.
func (r *Registry) RecordOp(container, op string) {
	r.OpsTotal.WithLabelValues(container, op).Inc()
}

// ObserveOpDuration records the latency of a single operation.
func (r *Registry) ObserveOpDuration(container, op string, seconds float64) {
	r.OpDuration.WithLabelValues(container, op).Observe(seconds)
}

// IncRejection counts an insert rejected by a bounded container.
func (r *Registry) IncRejection(container string) {
	r.RejectionsTotal.WithLabelValues(container).Inc()
}

// AddSweepRemovals counts entries removed by a sweep pass.
func (r *Registry) AddSweepRemovals(n int) {
	r.SweepRemovals.Add(float64(n))
}

// RecordRun records a completed run and its duration.
func (r *Registry) RecordRun(seconds float64) {
	r.RunsTotal.Inc()
	r.RunDuration.Observe(seconds)
}

// RegisterSource registers a container snapshot source so its gauges
// are collected on every scrape.
func (r *Registry) RegisterSource(src Source) error {
	return r.registry.Register(NewCollector(src))
}

// Handler returns an HTTP handler serving this registry's metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide metrics registry.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Handler returns an HTTP handler for the global registry.
func Handler() http.Handler {
	return Global().Handler()
}
