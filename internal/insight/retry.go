package insight

// #region imports
import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// #endregion

// #region timeout

// WithTimeout bounds every Generate call of p by d. d <= 0 returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return ProviderFunc(func(ctx context.Context, prompt string, opts Options) (Response, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return p.Generate(ctx, prompt, opts)
	})
}

// #endregion

// #region retry

// RetryConfig controls WithRetry.
type RetryConfig struct {
	MaxRetries      uint64 // retries after the first attempt
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig returns two retries starting at 250ms.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      2,
		InitialInterval: 250 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

// WithRetry retries failed Generate calls with exponential backoff.
// Malformed responses are not retried. Retry lives here, at the provider
// boundary; the classifier itself calls the provider exactly once.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxRetries == 0 {
		return p
	}
	return ProviderFunc(func(ctx context.Context, prompt string, opts Options) (Response, error) {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = cfg.InitialInterval
		if cfg.MaxInterval > 0 {
			eb.MaxInterval = cfg.MaxInterval
		}
		policy := backoff.WithContext(backoff.WithMaxRetries(eb, cfg.MaxRetries), ctx)

		var resp Response
		op := func() error {
			r, err := p.Generate(ctx, prompt, opts)
			if err != nil {
				if errors.Is(err, ErrMalformed) || errors.Is(err, ErrNoProvider) {
					return backoff.Permanent(err)
				}
				return err
			}
			resp = r
			return nil
		}
		if err := backoff.Retry(op, policy); err != nil {
			return Response{}, err
		}
		return resp, nil
	})
}

// #endregion
