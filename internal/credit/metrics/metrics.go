package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "credipet/pkg/domain-errors"
)

type Metrics struct {
	RecordedEvents  *prometheus.CounterVec
	TierUpgrades    *prometheus.CounterVec
	BadgeSyncs      *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	OperationErrors *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordedEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credipet_credit_records_total",
			Help: "Credit events recorded by the lending authority, labeled by kind (loan, repayment, default)",
		}, []string{"kind"}),
		TierUpgrades: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credipet_credit_tier_upgrades_total",
			Help: "Credit tier upgrades labeled by the tier reached",
		}, []string{"tier"}),
		BadgeSyncs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credipet_credit_badge_syncs_total",
			Help: "Badge registry calls made after credit events, labeled by action; skipped means no badge",
		}, []string{"action"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credipet_credit_profile_cache_lookups_total",
			Help: "Profile cache lookups labeled by result (hit, miss, error)",
		}, []string{"result"}),
		OperationErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credipet_credit_operation_errors_total",
			Help: "Failed credit operations labeled by operation and error code",
		}, []string{"operation", "code"}),
	}
}

func (m *Metrics) IncRecorded(kind string) {
	if m == nil {
		return
	}
	m.RecordedEvents.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncTierUpgrade(tier string) {
	if m == nil {
		return
	}
	m.TierUpgrades.WithLabelValues(tier).Inc()
}

func (m *Metrics) IncBadgeSync(action string) {
	if m == nil {
		return
	}
	m.BadgeSyncs.WithLabelValues(action).Inc()
}

func (m *Metrics) IncCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) IncError(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.OperationErrors.WithLabelValues(operation, string(dErrors.CodeOf(err))).Inc()
}
