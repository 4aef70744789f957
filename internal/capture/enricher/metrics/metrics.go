package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks what the background host does with each message.
type Metrics struct {
	MessagesReceived  *prometheus.CounterVec
	IdentityFallbacks prometheus.Counter
	RelayOutcomes     *prometheus.CounterVec
	InFlight          prometheus.Gauge
}

// New creates a new Metrics instance with all enricher metrics registered.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MessagesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "formtrail_enricher_messages_total",
			Help: "Messages dispatched to the enricher, by type",
		}, []string{"type"}),
		IdentityFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "formtrail_enricher_identity_fallbacks_total",
			Help: "Records built with the Email Not Found sentinel",
		}),
		RelayOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "formtrail_relay_outcomes_total",
			Help: "Relay attempts, by outcome kind",
		}, []string{"outcome"}),
		InFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "formtrail_enricher_in_flight",
			Help: "Submissions currently being enriched or relayed",
		}),
	}
}

func (m *Metrics) IncrementMessage(messageType string) {
	m.MessagesReceived.WithLabelValues(messageType).Inc()
}

func (m *Metrics) IncrementIdentityFallback() {
	m.IdentityFallbacks.Inc()
}

func (m *Metrics) IncrementOutcome(kind string) {
	m.RelayOutcomes.WithLabelValues(kind).Inc()
}

func (m *Metrics) TrackInFlight(delta float64) {
	m.InFlight.Add(delta)
}
