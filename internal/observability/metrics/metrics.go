package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for form submissions.
type BookingMetrics struct {
	submissionsTotal  *prometheus.CounterVec
	submissionLatency *prometheus.HistogramVec
	slotLookupsTotal  prometheus.Counter
	exitIntentTotal   *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hpl",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Total booking and quote submissions by outcome",
		}, []string{"form", "outcome"}),
		submissionLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hpl",
			Subsystem: "booking",
			Name:      "submission_latency_seconds",
			Help:      "Latency of submission processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form"}),
		slotLookupsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hpl",
			Subsystem: "booking",
			Name:      "slot_lookups_total",
			Help:      "Total available-time lookups",
		}),
		exitIntentTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hpl",
			Subsystem: "promo",
			Name:      "exit_intent_total",
			Help:      "Exit-intent evaluations by whether the popup was shown",
		}, []string{"shown"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.submissionLatency, m.slotLookupsTotal, m.exitIntentTotal)
	return m
}

// ObserveSubmission records one submission; outcome is accepted, invalid or error.
func (m *BookingMetrics) ObserveSubmission(form, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(form, outcome).Inc()
	m.submissionLatency.WithLabelValues(form).Observe(seconds)
}

func (m *BookingMetrics) ObserveSlotLookup() {
	if m == nil {
		return
	}
	m.slotLookupsTotal.Inc()
}

func (m *BookingMetrics) ObserveExitIntent(shown bool) {
	if m == nil {
		return
	}
	label := "false"
	if shown {
		label = "true"
	}
	m.exitIntentTotal.WithLabelValues(label).Inc()
}
