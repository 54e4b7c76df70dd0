package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPaymentMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPaymentMetrics(reg)

	m.IncIntent("created")
	m.IncIntent("created")
	m.IncCompleted("verify")
	m.IncFailed("signature_mismatch")
	m.IncReplay()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	got := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			got[family.GetName()+labelSuffix(metric)] += metric.GetCounter().GetValue()
		}
	}

	expect := map[string]float64{
		"payment_intents_total{outcome=created}":           2,
		"payments_completed_total{source=verify}":          1,
		"payments_failed_total{reason=signature_mismatch}": 1,
		"payment_replays_total":                            1,
	}
	for name, want := range expect {
		if got[name] != want {
			t.Errorf("%s = %v, want %v", name, got[name], want)
		}
	}
}

func TestPaymentMetricsNilSafe(t *testing.T) {
	var m *PaymentMetrics
	m.IncIntent("created")
	m.IncCompleted("verify")
	m.IncFailed("gateway")
	m.IncReplay()

	empty := NewPaymentMetrics(nil)
	empty.IncIntent("created")
}

func labelSuffix(metric *dto.Metric) string {
	labels := metric.GetLabel()
	if len(labels) == 0 {
		return ""
	}
	out := "{"
	for i, label := range labels {
		if i > 0 {
			out += ","
		}
		out += label.GetName() + "=" + label.GetValue()
	}
	return out + "}"
}
