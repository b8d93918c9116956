package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks writer contention and operation outcomes.
type Metrics struct {
	LockWait   prometheus.Histogram
	Operations *prometheus.CounterVec
}

// NewMetrics registers ledger collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LockWait: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "credipet_ledger_lock_wait_seconds",
			Help:    "Time spent waiting for the ledger writer slot",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credipet_ledger_operations_total",
			Help: "Ledger operations by outcome (committed, rolled_back)",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observeLockWait(seconds float64) {
	if m == nil {
		return
	}
	m.LockWait.Observe(seconds)
}

func (m *Metrics) incOutcome(err error) {
	if m == nil {
		return
	}
	outcome := "committed"
	if err != nil {
		outcome = "rolled_back"
	}
	m.Operations.WithLabelValues(outcome).Inc()
}
