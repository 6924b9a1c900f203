// Package ada is the misconception-aware answer engine. It grounds a query
// with a research call, asks the model for a structured evaluation, and
// scores the result through governance.
package ada

// #region imports
import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/adacomputing/ada-engine/internal/classifier"
	"github.com/adacomputing/ada-engine/internal/governance"
	"github.com/adacomputing/ada-engine/internal/insight"
)

// #endregion

// #region engine

// Method labels a successful Ada result.
const Method = "Ada Fluid-Manifold Governance"

// Engine is safe for concurrent use.
type Engine struct {
	provider insight.Provider
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides the time source used in prompts.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an engine over provider. A nil provider always degrades.
func New(provider insight.Provider, opts ...Option) *Engine {
	e := &Engine{provider: provider, logger: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// #endregion

// #region process

// Process answers query in the given register. history holds the prior
// turns of the session, oldest first. A failed evaluation yields
// classifier.DegradedResult; a failed research step does not.
func (e *Engine) Process(ctx context.Context, query string, history []insight.Message, level Complexity) classifier.SearchResult {
	level, _ = ParseComplexity(string(level))
	now := e.now()

	research, sources := e.research(ctx, query, now)

	res := insight.Consult(ctx, e.provider, evaluationPrompt(query, research, level, now), insight.Options{
		SystemInstruction: evaluationSystem(now),
		Schema:            evaluationSchema,
		History:           history,
	}, e.logger)
	if res.Failed() {
		return classifier.DegradedResult()
	}
	var ev evaluation
	if err := res.Response.DecodeStructured(&ev); err != nil {
		e.logger.Warn("evaluation payload rejected", "component", "ada", "error", err)
		return classifier.DegradedResult()
	}

	return e.resolve(ev, level, sources)
}

// research runs the grounding step. Failure is tolerated.
func (e *Engine) research(ctx context.Context, query string, now time.Time) (string, []insight.Source) {
	res := insight.Consult(ctx, e.provider, researchPrompt(query, now), insight.Options{
		SystemInstruction: researchSystem,
		Grounding:         true,
	}, e.logger)
	if res.Failed() {
		e.logger.Info("research step unavailable, using fallback", "component", "ada")
		return fallbackResearch, nil
	}
	summary := strings.TrimSpace(res.Response.Text)
	if summary == "" {
		summary = fallbackResearch
	}
	if cited := insight.FormatSources(res.Response.Sources, maxCitedSources); cited != "" {
		summary += "\n" + cited
	}
	return summary, res.Response.Sources
}

// #endregion

// #region resolve

func (e *Engine) resolve(ev evaluation, level Complexity, sources []insight.Source) classifier.SearchResult {
	c := governance.Clamp01(ev.Correctness)
	m := governance.Clamp01(ev.Misconception)
	score, constraint := governance.Score(c, m)

	action, ok := governance.ParseAction(ev.Action)
	if !ok {
		e.logger.Debug("unknown action from model", "component", "ada", "action", ev.Action)
		action = governance.ActionRespond
	}

	entity := strings.TrimSpace(ev.Entity)
	points, closed := Trajectory(m)

	e.logger.Debug("ada resolved", "component", "ada",
		"state", score.State, "status", constraint.Status)

	return classifier.SearchResult{
		Tier:        3,
		Method:      Method,
		Shape:       classifier.QueryShape(ev.Equation),
		Entity:      entity,
		Confidence:  c,
		Details:     fmt.Sprintf("Epistemic Resolution: %s. Complexity: %s.", score.State, level),
		InsightText: ev.Response,
		LexicalInfo: &classifier.LexicalInfo{
			Synonyms:   nonNil(ev.Synonyms),
			Antonyms:   nonNil(ev.Antonyms),
			Equation:   ev.Equation,
			Definition: ev.Definition,
		},
		ScoreVector:      score,
		Constraint:       constraint,
		Action:           action,
		TrajectoryPoints: points,
		IsClosed:         closed,
		GroundingSources: sources,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// #endregion
