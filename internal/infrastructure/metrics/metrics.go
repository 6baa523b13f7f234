package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NegotiationMetrics holds the service's Prometheus metrics.
type NegotiationMetrics struct {
	NegotiationsSubmittedTotal prometheus.CounterVec
	OffersSubmittedTotal       prometheus.CounterVec
	OffersEvaluatedTotal       prometheus.CounterVec
	EvaluationDuration         prometheus.HistogramVec
	EvaluationErrorsTotal      prometheus.CounterVec
	NegotiationsExpiredTotal   prometheus.Counter
	NegotiationStatusTotal     prometheus.CounterVec
}

var (
	instance *NegotiationMetrics
	once     sync.Once
)

// NewNegotiationMetrics returns the process-wide metrics instance. Collectors
// register with the default registry, so construction happens once.
func NewNegotiationMetrics() *NegotiationMetrics {
	once.Do(func() {
		instance = &NegotiationMetrics{
			NegotiationsSubmittedTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "negotiations_submitted_total",
					Help: "Total number of negotiations submitted by requesters",
				},
				[]string{"currency"},
			),

			OffersSubmittedTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "offers_submitted_total",
					Help: "Total number of requester offers submitted",
				},
				[]string{"currency"},
			),

			OffersEvaluatedTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "offers_evaluated_total",
					Help: "Total number of offers evaluated by the negotiation engine",
				},
				[]string{"decision", "reason"},
			),

			EvaluationDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "offer_evaluation_duration_seconds",
					Help:    "Time spent evaluating an offer, including decision application",
					Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
				},
				[]string{"decision"},
			),

			EvaluationErrorsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "offer_evaluation_errors_total",
					Help: "Total number of failed offer evaluations",
				},
				[]string{"error_type"},
			),

			NegotiationsExpiredTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "negotiations_expired_total",
					Help: "Total number of negotiations moved to EXPIRED by the sweep",
				},
			),

			NegotiationStatusTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "negotiation_status_transitions_total",
					Help: "Negotiation status transitions by resulting status",
				},
				[]string{"status"},
			),
		}
	})
	return instance
}

func (m *NegotiationMetrics) RecordNegotiationSubmitted(currency string) {
	m.NegotiationsSubmittedTotal.WithLabelValues(currency).Inc()
	m.NegotiationStatusTotal.WithLabelValues("SUBMITTED").Inc()
}

func (m *NegotiationMetrics) RecordOfferSubmitted(currency string) {
	m.OffersSubmittedTotal.WithLabelValues(currency).Inc()
}

func (m *NegotiationMetrics) RecordEvaluation(decision, reason string, durationSeconds float64) {
	m.OffersEvaluatedTotal.WithLabelValues(decision, reason).Inc()
	m.EvaluationDuration.WithLabelValues(decision).Observe(durationSeconds)
}

func (m *NegotiationMetrics) RecordEvaluationError(errorType string) {
	m.EvaluationErrorsTotal.WithLabelValues(errorType).Inc()
}

func (m *NegotiationMetrics) RecordStatus(status string) {
	m.NegotiationStatusTotal.WithLabelValues(status).Inc()
}

func (m *NegotiationMetrics) RecordExpired(count int) {
	m.NegotiationsExpiredTotal.Add(float64(count))
}
