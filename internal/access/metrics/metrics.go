package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the access decision engine.
type Metrics struct {
	// Decision outcomes by result (allowed / denied / error)
	DecisionOutcome *prometheus.CounterVec

	// Overall decision latency including store round trips
	EvaluateLatency prometheus.Histogram

	// Identities synthesized by the provisioner
	UsersProvisioned prometheus.Counter
}

// New creates a Metrics instance with all access metrics registered.
func New() *Metrics {
	return &Metrics{
		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dataset_access_decisions_total",
			Help: "Total access decisions by result",
		}, []string{"result"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dataset_access_evaluate_duration_seconds",
			Help:    "Duration of a full access decision including store reads",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		UsersProvisioned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dataset_access_users_provisioned_total",
			Help: "Total identities auto-provisioned from the template",
		}),
	}
}

// IncrementOutcome records a decision result.
func (m *Metrics) IncrementOutcome(result string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(result).Inc()
	}
}

// ObserveEvaluateLatency records the total decision duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// IncrementUsersProvisioned records one auto-provisioned identity.
func (m *Metrics) IncrementUsersProvisioned() {
	if m != nil {
		m.UsersProvisioned.Inc()
	}
}
