package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the scheduler's Prometheus surface, trimmed from the
// teacher's sprawling cluster/consensus/healing gauge set down to the
// three numbers this service actually produces: how many runs happened,
// how long the last one's makespan was, and its upper bound.
type Metrics struct {
	registry    *prometheus.Registry
	runsTotal   prometheus.Counter
	runsFailed  prometheus.Counter
	makespan    prometheus.Gauge
	upperBound  prometheus.Gauge
	runDuration prometheus.Histogram
}

func newMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mcpscheduler_runs_total",
			Help: "Total number of scheduling runs completed successfully.",
		}),
		runsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mcpscheduler_runs_failed_total",
			Help: "Total number of scheduling runs that returned an error.",
		}),
		makespan: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mcpscheduler_last_makespan",
			Help: "Makespan of the most recently completed scheduling run.",
		}),
		upperBound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mcpscheduler_last_upper_bound",
			Help: "Upper bound of the most recently completed scheduling run.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mcpscheduler_run_duration_seconds",
			Help:    "Wall-clock duration of scheduling runs.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.runsTotal, m.runsFailed, m.makespan, m.upperBound, m.runDuration)
	return m
}

func (m *Metrics) observeSuccess(makespan, ub int, seconds float64) {
	m.runsTotal.Inc()
	m.makespan.Set(float64(makespan))
	m.upperBound.Set(float64(ub))
	m.runDuration.Observe(seconds)
}

func (m *Metrics) observeFailure() {
	m.runsFailed.Inc()
}

func (s *Server) handleMetrics(c *gin.Context) {
	handler := promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})
	handler.ServeHTTP(c.Writer, c.Request)
}
