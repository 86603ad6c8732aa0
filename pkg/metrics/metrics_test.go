package metrics

import (
	"testing"
)

func gatherValue(t *testing.T, m *Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		metric := family.GetMetric()[0]
		switch {
		case metric.GetCounter() != nil:
			return metric.GetCounter().GetValue()
		case metric.GetGauge() != nil:
			return metric.GetGauge().GetValue()
		case metric.GetHistogram() != nil:
			return float64(metric.GetHistogram().GetSampleCount())
		}
	}
	t.Fatalf("metric %q not found in registry", name)
	return 0
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics("test_service").(*Metrics)
	m.RegisterCounter("requests_total", "Total number of requests")

	m.IncCounter("requests_total")
	m.IncCounter("requests_total")
	m.AddCounter("requests_total", 3)

	if got := gatherValue(t, m, "requests_total"); got != 5 {
		t.Errorf("counter value = %v, want 5", got)
	}
}

func TestMetrics_CounterVec(t *testing.T) {
	m := NewMetrics("test_service").(*Metrics)
	m.RegisterCounterVec("requests_by_op_total", "Requests by operation", []string{"operation"})

	m.IncCounterVec("requests_by_op_total", "login")
	m.IncCounterVec("requests_by_op_total", "login")
	m.IncCounterVec("requests_by_op_total", "addPin")

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, family := range families {
		if family.GetName() != "requests_by_op_total" {
			continue
		}
		if len(family.GetMetric()) != 2 {
			t.Errorf("label series = %d, want 2", len(family.GetMetric()))
		}
		return
	}
	t.Fatal("requests_by_op_total not found in registry")
}

func TestMetrics_Histogram(t *testing.T) {
	m := NewMetrics("test_service").(*Metrics)
	m.RegisterHistogram("request_duration_seconds", "Request durations", []float64{0.01, 0.1, 1})

	m.ObserveHistogram("request_duration_seconds", 0.05)
	m.ObserveHistogram("request_duration_seconds", 0.5)

	if got := gatherValue(t, m, "request_duration_seconds"); got != 2 {
		t.Errorf("histogram sample count = %v, want 2", got)
	}
}

func TestMetrics_Gauge(t *testing.T) {
	m := NewMetrics("test_service").(*Metrics)
	m.RegisterGauge("open_connections", "Currently open connections")

	m.IncGauge("open_connections")
	m.IncGauge("open_connections")
	m.DecGauge("open_connections")
	m.SetGauge("open_connections", 7)

	if got := gatherValue(t, m, "open_connections"); got != 7 {
		t.Errorf("gauge value = %v, want 7", got)
	}
}

func TestMetrics_UnregisteredNamesAreNoOps(t *testing.T) {
	// A zero-value Metrics has nil maps; lookups must not panic. Handlers
	// rely on this to take &Metrics{} in tests.
	m := &Metrics{}

	m.IncCounter("missing")
	m.AddCounter("missing", 1)
	m.IncCounterVec("missing", "label")
	m.ObserveHistogram("missing", 1)
	m.SetGauge("missing", 1)
	m.IncGauge("missing")
	m.DecGauge("missing")
}
