package classifier

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"github.com/adacomputing/ada-engine/internal/governance"
	"github.com/adacomputing/ada-engine/internal/insight"
)

// #endregion

// #region prompt

const tier3System = "You are a Kinematic Semantics expert. You treat language as geometry. " +
	"Your output should be structured to resolve incomplete semantic equations."

// tier3Schema asks for the entity and a short insight.
var tier3Schema = &insight.Schema{Fields: []insight.Field{
	{Name: "entity", Type: insight.FieldString, Description: "the primary entity of the query"},
	{Name: "shape", Type: insight.FieldString, Description: "the query shape, e.g. population_of, law_of"},
	{Name: "insight", Type: insight.FieldString, Description: "a short kinematic insight explaining why the query has this shape"},
}}

func tier3Prompt(query string) string {
	return fmt.Sprintf("Analyze this query using Kinematic Semantics: %q.\n"+
		"Extract the primary 'Entity' and the 'Query Shape' (e.g. population_of, law_of, etc.).\n"+
		"Provide a short 'Kinematic Insight' explaining why this query has this specific shape.", query)
}

type tier3Payload struct {
	Entity  string `json:"entity"`
	Shape   string `json:"shape"`
	Insight string `json:"insight"`
}

// #endregion

// #region match-tier3

// matchTier3 delegates to the provider. It always returns a result.
func (c *Classifier) matchTier3(ctx context.Context, query string) SearchResult {
	res := insight.Consult(ctx, c.provider, tier3Prompt(query), insight.Options{
		SystemInstruction: tier3System,
		Schema:            tier3Schema,
	}, c.logger)
	if res.Failed() {
		return DegradedResult()
	}

	var payload tier3Payload
	if err := res.Response.DecodeStructured(&payload); err != nil {
		c.logger.Warn("tier 3 payload rejected", "component", "classifier", "error", err)
		return DegradedResult()
	}

	entity := strings.TrimSpace(payload.Entity)
	if entity == "" {
		entity = "Resolved via LLM"
	}
	text := strings.TrimSpace(payload.Insight)
	if text == "" {
		text = strings.TrimSpace(res.Response.Text)
	}

	return SearchResult{
		Tier:             3,
		Method:           "Gemini Latent Resonance",
		Shape:            ShapeUnknown,
		Entity:           entity,
		Confidence:       0.85,
		Details:          "High-entropy signal resolved via deep latent space mapping.",
		InsightText:      text,
		ScoreVector:      governance.ScoreVector{C: 0.75, M: 0.1, F: 0.15, K: 0.75, State: governance.StatePartial},
		Constraint:       governance.Constraint{Status: governance.StatusGreen, Ratio: 1.0},
		Action:           governance.ActionRespond,
		TrajectoryPoints: []Point{{0, 0}, {0.2, 0.8}, {1, 1}},
		IsClosed:         true,
		GroundingSources: res.Response.Sources,
	}
}

// DegradedResult is the terminal state for any failed delegation.
func DegradedResult() SearchResult {
	return SearchResult{
		Tier:             3,
		Method:           "Failed Vector Search",
		Shape:            ShapeUnknown,
		Entity:           "System Error",
		Confidence:       0,
		Details:          "Connection to latent manifold severed.",
		InsightText:      "Manifold structural collapse: Unable to resolve semantic signal.",
		ScoreVector:      governance.ScoreVector{C: 0, M: 0, F: 1.0, K: 0, State: governance.StateFog},
		Constraint:       governance.Constraint{Status: governance.StatusRed, Ratio: 0},
		Action:           governance.ActionAbstain,
		TrajectoryPoints: []Point{{0, 0}},
		IsClosed:         false,
	}
}

// #endregion
