package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "credipet/pkg/domain-errors"
)

type Metrics struct {
	Minted            prometheus.Counter
	Evolutions        *prometheus.CounterVec
	HealthChanges     *prometheus.CounterVec
	TransfersRejected prometheus.Counter
	OperationErrors   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Minted: f.NewCounter(prometheus.CounterOpts{
			Name: "credipet_badges_minted_total",
			Help: "Total number of badges minted",
		}),
		Evolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credipet_badge_evolutions_total",
			Help: "Badge evolutions labeled by the stage reached",
		}, []string{"stage"}),
		HealthChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credipet_badge_health_changes_total",
			Help: "Badge health updates labeled by the new weakened flag",
		}, []string{"weakened"}),
		TransfersRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "credipet_badge_transfers_rejected_total",
			Help: "Transfer attempts rejected because badges are soulbound",
		}),
		OperationErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credipet_badge_operation_errors_total",
			Help: "Failed badge operations labeled by operation and error code",
		}, []string{"operation", "code"}),
	}
}

func (m *Metrics) IncMinted() {
	if m == nil {
		return
	}
	m.Minted.Inc()
}

func (m *Metrics) IncEvolution(stage string) {
	if m == nil {
		return
	}
	m.Evolutions.WithLabelValues(stage).Inc()
}

func (m *Metrics) IncHealthChange(weakened bool) {
	if m == nil {
		return
	}
	label := "false"
	if weakened {
		label = "true"
	}
	m.HealthChanges.WithLabelValues(label).Inc()
}

func (m *Metrics) IncTransferRejected() {
	if m == nil {
		return
	}
	m.TransfersRejected.Inc()
}

func (m *Metrics) IncError(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.OperationErrors.WithLabelValues(operation, string(dErrors.CodeOf(err))).Inc()
}
