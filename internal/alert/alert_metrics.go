package alert

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the alert subsystem.
type Metrics struct {
	IngestsTotal       *prometheus.CounterVec
	AlertsBySeverity   *prometheus.CounterVec
	StatusUpdatesTotal *prometheus.CounterVec
}

// NewMetrics registers and returns alert metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		IngestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_alert_ingests_total",
			Help: "Total alert ingestion attempts by result.",
		}, []string{"result"}),
		AlertsBySeverity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_alerts_total",
			Help: "Total accepted alerts by severity.",
		}, []string{"severity"}),
		StatusUpdatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_alert_status_updates_total",
			Help: "Total alert status updates by new status.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.IngestsTotal,
		m.AlertsBySeverity,
		m.StatusUpdatesTotal,
	)

	return m
}
