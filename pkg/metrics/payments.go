package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PaymentMetrics records payment reconciliation outcomes.
type PaymentMetrics struct {
	intents   *prometheus.CounterVec
	completed *prometheus.CounterVec
	failed    *prometheus.CounterVec
	replays   prometheus.Counter
}

// NewPaymentMetrics registers the payment metrics on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	intents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_intents_total",
		Help: "Gateway payment intents created, by outcome.",
	}, []string{"outcome"})
	completed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_completed_total",
		Help: "Payments marked completed, by entry point.",
	}, []string{"source"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_failed_total",
		Help: "Payments marked failed, by reason.",
	}, []string{"reason"})
	replays := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_replays_total",
		Help: "Verification or webhook deliveries skipped as already applied.",
	})
	reg.MustRegister(intents, completed, failed, replays)
	return &PaymentMetrics{
		intents:   intents,
		completed: completed,
		failed:    failed,
		replays:   replays,
	}
}

// IncIntent counts one intent creation attempt with its outcome.
func (m *PaymentMetrics) IncIntent(outcome string) {
	if m == nil || m.intents == nil {
		return
	}
	m.intents.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCompleted counts one payment completion from the named entry point.
func (m *PaymentMetrics) IncCompleted(source string) {
	if m == nil || m.completed == nil {
		return
	}
	m.completed.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncFailed counts one payment failure with its reason.
func (m *PaymentMetrics) IncFailed(reason string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncReplay counts one duplicate delivery that was safely ignored.
func (m *PaymentMetrics) IncReplay() {
	if m == nil || m.replays == nil {
		return
	}
	m.replays.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
