package metrics

import "github.com/prometheus/client_golang/prometheus"

// AccountActionMetrics counts admin lifecycle requests by action and outcome.
type AccountActionMetrics struct {
	actions *prometheus.CounterVec
}

func NewAccountActionMetrics(reg prometheus.Registerer) *AccountActionMetrics {
	if reg == nil {
		return &AccountActionMetrics{}
	}
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "account_actions_total",
		Help: "Admin account lifecycle actions by action and outcome.",
	}, []string{"action", "outcome"})
	reg.MustRegister(actions)
	return &AccountActionMetrics{actions: actions}
}

func (m *AccountActionMetrics) Inc(action, outcome string) {
	if m == nil || m.actions == nil {
		return
	}
	m.actions.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}
