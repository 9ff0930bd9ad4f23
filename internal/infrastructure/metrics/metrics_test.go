package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Swap the default registry so New registers somewhere inspectable.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.EntriesCreated == nil || m.RefundsCreated == nil || m.ExpensesPaid == nil {
		t.Fatalf("expected core counters to be initialized: %+v", m)
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metrics, got none")
	}

	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), "fundhost_") {
			t.Fatalf("metric %s missing fundhost_ prefix", f.GetName())
		}
	}
}
