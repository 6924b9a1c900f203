// Package classifier resolves free-text queries to a canonical shape and
// entity through three escalating tiers: rigid patterns, semantic cluster
// resonance, and delegation to an external insight provider.
package classifier

// #region imports
import (
	"context"
	"log/slog"

	"github.com/adacomputing/ada-engine/internal/insight"
)

// #endregion

// #region classifier

// Classifier is safe for concurrent use. All of its state is read-only
// after New.
type Classifier struct {
	provider insight.Provider
	logger   *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger. nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a classifier. A nil provider is allowed; Tier 3 then always
// degrades.
func New(provider insight.Provider, opts ...Option) *Classifier {
	c := &Classifier{provider: provider, logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// #endregion

// #region process

// Process returns the result of the first tier that resolves query. It never
// panics and never returns an error; failures surface as DegradedResult.
func (c *Classifier) Process(ctx context.Context, query string) SearchResult {
	if r, ok := matchTier1(query); ok {
		c.logger.Debug("resolved", "component", "classifier", "tier", 1, "shape", r.Shape, "entity", r.Entity)
		return r
	}
	if r, ok := matchTier2(query); ok {
		c.logger.Debug("resolved", "component", "classifier", "tier", 2, "shape", r.Shape, "entity", r.Entity)
		return r
	}
	r := c.matchTier3(ctx, query)
	c.logger.Debug("resolved", "component", "classifier", "tier", 3, "method", r.Method)
	return r
}

// Resolve runs only the deterministic tiers. ok is false when the query
// would need delegation.
func Resolve(query string) (SearchResult, bool) {
	if r, ok := matchTier1(query); ok {
		return r, true
	}
	return matchTier2(query)
}

// #endregion
