package metrics

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/adacomputing/ada-engine/internal/classifier"
	"github.com/adacomputing/ada-engine/internal/insight"
)

func TestObserveResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	r, _ := classifier.Resolve("capital of France")
	m.ObserveResult("solve", r)
	m.ObserveResult("solve", r)
	m.ObserveResult("ask", classifier.DegradedResult())

	expected := `
# HELP ada_degraded_total Queries that ended in the degraded terminal state.
# TYPE ada_degraded_total counter
ada_degraded_total{operation="ask"} 1
`
	// Compare before the per-label reads below, which create zero series.
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "ada_degraded_total"); err != nil {
		t.Error(err)
	}

	if got := testutil.ToFloat64(m.resolutions.WithLabelValues("solve", "1", "Rigid Pattern Match")); got != 2 {
		t.Errorf("tier-1 resolutions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.degraded.WithLabelValues("ask")); got != 1 {
		t.Errorf("degraded = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.degraded.WithLabelValues("solve")); got != 0 {
		t.Errorf("solve degraded = %v, want 0", got)
	}
}

func TestInstrumentProvider(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	calls := 0
	p := m.InstrumentProvider(insight.ProviderFunc(func(context.Context, string, insight.Options) (insight.Response, error) {
		calls++
		if calls == 2 {
			return insight.Response{}, errors.New("down")
		}
		return insight.Response{Text: "ok"}, nil
	}))
	_, _ = p.Generate(context.Background(), "a", insight.Options{})
	_, _ = p.Generate(context.Background(), "b", insight.Options{})

	if n := testutil.CollectAndCount(m.providerLatency); n != 2 {
		t.Errorf("expected ok and error series, got %d", n)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveResult("solve", classifier.DegradedResult())
	m.StoreError("record")
	p := insight.ProviderFunc(func(context.Context, string, insight.Options) (insight.Response, error) {
		return insight.Response{Text: "x"}, nil
	})
	if got := m.InstrumentProvider(p); got == nil {
		t.Error("nil metrics should return the provider unchanged")
	}
}

func TestStoreError(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.StoreError("record")
	if got := testutil.ToFloat64(m.storeErrors.WithLabelValues("record")); got != 1 {
		t.Errorf("store errors = %v", got)
	}
}
