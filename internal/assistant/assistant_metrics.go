package assistant

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the assistant subsystem.
type Metrics struct {
	SessionsTotal    prometheus.Counter
	ExchangesTotal   *prometheus.CounterVec
	ExchangeDuration prometheus.Histogram
	TranscriptTurns  prometheus.Histogram
}

// NewMetrics registers and returns assistant metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aegis_assistant_sessions_total",
			Help: "Total assistant sessions created.",
		}),
		ExchangesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aegis_assistant_exchanges_total",
			Help: "Total analysis exchanges by outcome.",
		}, []string{"outcome"}),
		ExchangeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aegis_assistant_exchange_duration_seconds",
			Help:    "Duration of analysis exchanges in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s .. ~64s
		}),
		TranscriptTurns: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "aegis_assistant_transcript_turns",
			Help:    "Transcript length after each exchange.",
			Buckets: prometheus.LinearBuckets(2, 2, 10), // 2 .. 20
		}),
	}

	reg.MustRegister(
		m.SessionsTotal,
		m.ExchangesTotal,
		m.ExchangeDuration,
		m.TranscriptTurns,
	)

	return m
}
