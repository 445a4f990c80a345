package promstats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestAdapterIncrementsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := New(reg, "clockpro", "test", nil)

	a.Operation()
	a.Operation()
	a.Hit()
	a.Miss()
	a.Miss()
	a.Eviction()

	if got := counterValue(t, a.operations); got != 2 {
		t.Errorf("operations = %v, want 2", got)
	}
	if got := counterValue(t, a.hits); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := counterValue(t, a.misses); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
	if got := counterValue(t, a.evictions); got != 1 {
		t.Errorf("evictions = %v, want 1", got)
	}
}

func TestNewRegistersWithGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, "clockpro", "test2", nil)

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(families) != 4 {
		t.Errorf("registered %d metric families, want 4", len(families))
	}
}
