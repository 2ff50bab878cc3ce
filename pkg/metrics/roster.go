package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup kinds reported by the degraded lookup counter.
const (
	LookupRole   = "role"
	LookupStatus = "status"
)

// Load outcomes reported by the roster load histogram.
const (
	OutcomeOK         = "ok"
	OutcomeError      = "error"
	OutcomeSuperseded = "superseded"
)

// RosterMetrics records roster page loads and per-row lookup degradation.
type RosterMetrics struct {
	loadDuration *prometheus.HistogramVec
	degraded     *prometheus.CounterVec
	rowsResolved prometheus.Counter
}

// NewRosterMetrics registers the roster metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewRosterMetrics(reg prometheus.Registerer) *RosterMetrics {
	if reg == nil {
		return &RosterMetrics{}
	}
	loadDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roster_load_duration_seconds",
		Help:    "Duration of admin roster page loads in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	degraded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_degraded_lookups_total",
		Help: "Per-row role or status lookups that failed and fell back to a default.",
	}, []string{"kind"})
	rowsResolved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_rows_resolved_total",
		Help: "Roster rows resolved across all page loads.",
	})
	reg.MustRegister(loadDuration, degraded, rowsResolved)
	return &RosterMetrics{
		loadDuration: loadDuration,
		degraded:     degraded,
		rowsResolved: rowsResolved,
	}
}

// ObserveLoad records how long a page load took and how it ended.
func (m *RosterMetrics) ObserveLoad(outcome string, duration time.Duration) {
	if m == nil || m.loadDuration == nil {
		return
	}
	m.loadDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncDegraded counts a lookup that fell back to its sentinel value.
func (m *RosterMetrics) IncDegraded(kind string) {
	if m == nil || m.degraded == nil {
		return
	}
	m.degraded.WithLabelValues(normalizeLabel(kind)).Inc()
}

// AddRows counts resolved rows.
func (m *RosterMetrics) AddRows(n int) {
	if m == nil || m.rowsResolved == nil || n <= 0 {
		return
	}
	m.rowsResolved.Add(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
