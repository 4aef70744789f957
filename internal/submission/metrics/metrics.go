package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the submission store.
// Tracks accepted and rejected submissions and store round-trip durations.
type Metrics struct {
	SubmissionsCreated  prometheus.Counter
	SubmissionsRejected *prometheus.CounterVec
	CreateDuration      prometheus.Histogram
	ListDuration        prometheus.Histogram
	ListedRecords       prometheus.Gauge
}

// New creates a new Metrics instance with all submission metrics registered
// on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the submission metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "formtrail_submissions_created_total",
			Help: "Total number of submissions persisted",
		}),
		SubmissionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "formtrail_submissions_rejected_total",
			Help: "Submissions rejected before or during persistence, by reason",
		}, []string{"reason"}),
		CreateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "formtrail_submission_create_duration_seconds",
			Help:    "Duration of submission create operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ListDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "formtrail_submission_list_duration_seconds",
			Help:    "Duration of full submission listings",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		ListedRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "formtrail_submissions_listed",
			Help: "Number of records returned by the most recent listing",
		}),
	}
}

// IncrementCreated records a successful insert.
func (m *Metrics) IncrementCreated() {
	m.SubmissionsCreated.Inc()
}

// IncrementRejected records a rejected submission. reason is "missing_field",
// "invalid_timestamp" or "unavailable".
func (m *Metrics) IncrementRejected(reason string) {
	m.SubmissionsRejected.WithLabelValues(reason).Inc()
}

// ObserveCreate records the duration of a Create call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCreate(start time.Time) {
	m.CreateDuration.Observe(time.Since(start).Seconds())
}

// ObserveList records the duration and size of a List call.
func (m *Metrics) ObserveList(start time.Time, count int) {
	m.ListDuration.Observe(time.Since(start).Seconds())
	m.ListedRecords.Set(float64(count))
}
