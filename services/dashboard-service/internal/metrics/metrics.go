// Package metrics holds the dashboard's Prometheus collectors. A nil
// *Dashboard is valid and records nothing.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "clinicdesk"

type Dashboard struct {
	rosterQueries   *prometheus.CounterVec
	wizardActions   *prometheus.CounterVec
	sessionsStarted prometheus.Counter
	confirmations   *prometheus.CounterVec
	submitLatency   prometheus.Histogram
	outboxPublished prometheus.Counter
}

func NewDashboard(reg prometheus.Registerer) *Dashboard {
	m := &Dashboard{
		rosterQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "roster",
			Name:      "queries_total",
			Help:      "Patient roster queries by status filter and result emptiness",
		}, []string{"status", "empty"}),
		wizardActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "wizard_actions_total",
			Help:      "Booking wizard actions by type and whether they changed the state",
		}, []string{"action", "applied"}),
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "sessions_started_total",
			Help:      "Booking wizard sessions started",
		}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "confirmations_total",
			Help:      "Booking confirmations by result (success, failed, inert)",
		}, []string{"result"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "submit_duration_seconds",
			Help:      "Duration of booking submissions",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 1.5, 2, 3, 5},
		}),
		outboxPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "published_total",
			Help:      "Outbox events written to Kafka",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.rosterQueries, m.wizardActions, m.sessionsStarted, m.confirmations, m.submitLatency, m.outboxPublished)
	return m
}

func (m *Dashboard) ObserveRosterQuery(status string, results int) {
	if m == nil {
		return
	}
	m.rosterQueries.WithLabelValues(status, strconv.FormatBool(results == 0)).Inc()
}

func (m *Dashboard) ObserveWizardAction(action string, applied bool) {
	if m == nil {
		return
	}
	m.wizardActions.WithLabelValues(action, strconv.FormatBool(applied)).Inc()
}

func (m *Dashboard) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

func (m *Dashboard) ObserveConfirmation(result string) {
	if m == nil {
		return
	}
	m.confirmations.WithLabelValues(result).Inc()
}

func (m *Dashboard) ObserveSubmit(seconds float64) {
	if m == nil {
		return
	}
	m.submitLatency.Observe(seconds)
}

func (m *Dashboard) OutboxPublished(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.outboxPublished.Add(float64(n))
}
