package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	if m.InvocationsTotal == nil {
		t.Fatal("InvocationsTotal should not be nil")
	}
	if m.AttemptsTotal == nil {
		t.Fatal("AttemptsTotal should not be nil")
	}
	if m.ResultsTotal == nil {
		t.Fatal("ResultsTotal should not be nil")
	}
	if m.InvocationLatency == nil {
		t.Fatal("InvocationLatency should not be nil")
	}
}

func TestRecordResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordResult("success", 0.2)
	m.RecordResult("success", 0.4)
	m.RecordResult("failure", 0.1)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "hookwire_invocation_results_total" {
			found = true
			metrics := f.GetMetric()
			if len(metrics) != 2 { // success + failure
				t.Fatalf("expected 2 label combinations, got %d", len(metrics))
			}
		}
	}
	if !found {
		t.Fatal("hookwire_invocation_results_total metric not found")
	}
}

func TestInvocationsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.InvocationsTotal.Inc()
	m.InvocationsTotal.Inc()
	m.AttemptsTotal.Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	counts := map[string]float64{
		"hookwire_invocations_total":         2,
		"hookwire_invocation_attempts_total": 1,
	}

	for _, f := range families {
		expected, ok := counts[f.GetName()]
		if !ok {
			continue
		}
		val := f.GetMetric()[0].GetCounter().GetValue()
		if val != expected {
			t.Fatalf("%s: expected %f, got %f", f.GetName(), expected, val)
		}
		delete(counts, f.GetName())
	}

	if len(counts) > 0 {
		t.Fatalf("metrics not found: %v", counts)
	}
}
