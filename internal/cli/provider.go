package cli

// #region imports
import (
	"context"
	"fmt"
	"time"

	"github.com/adacomputing/ada-engine/internal/codec"
	"github.com/adacomputing/ada-engine/internal/config"
	"github.com/adacomputing/ada-engine/internal/insight"
	"github.com/adacomputing/ada-engine/internal/metrics"
)

// #endregion

// #region provider-factory

// NewProvider builds the insight provider named by cfg.Provider and wraps it
// with the configured timeout and retries and with latency metrics. The
// returned close function releases the backend; it is never nil. Provider
// "none" yields a nil provider, which every tier treats as unavailable.
func NewProvider(ctx context.Context, cfg config.Config, m *metrics.Metrics) (insight.Provider, func() error, error) {
	noop := func() error { return nil }

	var (
		base    insight.Provider
		closeFn = noop
	)
	switch cfg.Provider {
	case config.ProviderNone, "":
		return nil, noop, nil
	case config.ProviderGemini:
		g, err := insight.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			return nil, noop, err
		}
		base = g
	case config.ProviderOllama, config.ProviderOpenAI, config.ProviderAnthropic:
		lc, err := insight.NewLangChainProvider(langChainConfig(cfg))
		if err != nil {
			return nil, noop, err
		}
		base = lc
	case config.ProviderGRPC:
		c, err := codec.NewCodecClient(cfg.CodecAddr)
		if err != nil {
			return nil, noop, err
		}
		base, closeFn = c, c.Close
	default:
		return nil, noop, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	p := insight.WithTimeout(base, cfg.ProviderTimeout)
	if cfg.ProviderRetries > 0 {
		rc := insight.DefaultRetryConfig()
		rc.MaxRetries = uint64(cfg.ProviderRetries)
		p = insight.WithRetry(p, rc)
	}
	return m.InstrumentProvider(p), closeFn, nil
}

func langChainConfig(cfg config.Config) insight.LangChainConfig {
	lc := insight.LangChainConfig{Backend: cfg.Provider, Model: cfg.Model}
	switch cfg.Provider {
	case config.ProviderOllama:
		lc.ServerURL = cfg.OllamaHost
	case config.ProviderOpenAI:
		lc.APIKey = cfg.OpenAIAPIKey
	case config.ProviderAnthropic:
		lc.APIKey = cfg.AnthropicAPIKey
	}
	return lc
}

// requestTimeout bounds one CLI operation: research plus evaluation, each
// with its own retries.
func requestTimeout(cfg config.Config) time.Duration {
	per := cfg.ProviderTimeout
	if per <= 0 {
		per = 30 * time.Second
	}
	return 2 * per * time.Duration(cfg.ProviderRetries+1)
}

// #endregion
