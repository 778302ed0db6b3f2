package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for webhook invocations.
type Metrics struct {
	InvocationsTotal  prometheus.Counter
	AttemptsTotal     prometheus.Counter
	ResultsTotal      *prometheus.CounterVec
	InvocationLatency prometheus.Histogram
}

// NewMetrics creates and registers the invocation instruments on the given
// registerer. Pass prometheus.DefaultRegisterer for standalone usage or a
// dedicated registry when embedding.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		InvocationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hookwire_invocations_total",
			Help: "Webhook invocation activities started.",
		}),
		AttemptsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hookwire_invocation_attempts_total",
			Help: "HTTP dispatch attempts, including retries.",
		}),
		ResultsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hookwire_invocation_results_total",
			Help: "Invocation outcomes by status.",
		}, []string{"status"}),
		InvocationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hookwire_invocation_latency_seconds",
			Help:    "End-to-end invocation latency including retries.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.InvocationsTotal, m.AttemptsTotal, m.ResultsTotal, m.InvocationLatency)

	return m
}

// RecordResult records an invocation outcome with the given status label
// ("success", "failure" or "error") and latency.
func (m *Metrics) RecordResult(status string, latencySeconds float64) {
	m.ResultsTotal.WithLabelValues(status).Inc()
	m.InvocationLatency.Observe(latencySeconds)
}
