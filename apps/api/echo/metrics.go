package echoapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ishanya/ishanya/core"
)

// Submission results
const (
	resultSucceeded = "succeeded"
	resultFailed    = "failed"
	resultInvalid   = "invalid"
	resultRejected  = "rejected"
	resultError     = "error"
)

type metrics struct {
	submissions        *prometheus.CounterVec
	submissionDuration *prometheus.HistogramVec
	fieldErrors        *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ishanya",
				Subsystem: "forms",
				Name:      "submissions_total",
				Help:      "Form submissions by form and result.",
			},
			[]string{"form", "result"},
		),
		submissionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "ishanya",
				Subsystem: "forms",
				Name:      "submission_duration_seconds",
				Help:      "Time spent handling a form submission.",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"form"},
		),
		fieldErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ishanya",
				Subsystem: "forms",
				Name:      "field_errors_total",
				Help:      "Rejected field values by form and field.",
			},
			[]string{"form", "field"},
		),
	}
}

func (m *metrics) observeSubmission(form, result string, d time.Duration) {
	m.submissions.WithLabelValues(form, result).Inc()
	m.submissionDuration.WithLabelValues(form).Observe(d.Seconds())
}

func (m *metrics) observeValidation(form string, fields []core.FieldError) {
	for _, fe := range fields {
		m.fieldErrors.WithLabelValues(form, fe.Field).Inc()
	}
}
