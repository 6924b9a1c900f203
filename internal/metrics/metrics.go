// Package metrics exposes Prometheus instruments for query resolution and
// provider calls. A nil *Metrics is a valid no-op.
package metrics

// #region imports
import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/adacomputing/ada-engine/internal/classifier"
	"github.com/adacomputing/ada-engine/internal/insight"
)

// #endregion

// #region metrics

const namespace = "ada"

// Metrics groups the engine's instruments.
type Metrics struct {
	resolutions     *prometheus.CounterVec
	degraded        *prometheus.CounterVec
	confidence      *prometheus.HistogramVec
	providerLatency *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
}

// New registers the instruments on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Resolved queries by operation, tier and method.",
		}, []string{"operation", "tier", "method"}),
		degraded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_total",
			Help:      "Queries that ended in the degraded terminal state.",
		}, []string{"operation"}),
		confidence: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "confidence",
			Help:      "Confidence of resolved queries.",
			Buckets:   []float64{0, 0.25, 0.5, 0.7, 0.8, 0.85, 0.9, 0.95, 1},
		}, []string{"operation"}),
		providerLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_latency_seconds",
			Help:      "Latency of insight provider calls.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"outcome"}),
		storeErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Ledger writes that failed.",
		}, []string{"op"}),
	}
}

// #endregion

// #region observe

// ObserveResult counts one resolved query.
func (m *Metrics) ObserveResult(operation string, r classifier.SearchResult) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(operation, strconv.Itoa(r.Tier), r.Method).Inc()
	m.confidence.WithLabelValues(operation).Observe(r.Confidence)
	if r.Degraded() {
		m.degraded.WithLabelValues(operation).Inc()
	}
}

// StoreError counts a failed ledger operation.
func (m *Metrics) StoreError(op string) {
	if m == nil {
		return
	}
	m.storeErrors.WithLabelValues(op).Inc()
}

// InstrumentProvider records the latency and outcome of every call to p.
func (m *Metrics) InstrumentProvider(p insight.Provider) insight.Provider {
	if m == nil || p == nil {
		return p
	}
	return insight.ProviderFunc(func(ctx context.Context, prompt string, opts insight.Options) (insight.Response, error) {
		start := time.Now()
		resp, err := p.Generate(ctx, prompt, opts)
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		m.providerLatency.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		return resp, err
	})
}

// #endregion
