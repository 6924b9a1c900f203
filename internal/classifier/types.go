package classifier

// #region imports
import (
	"github.com/adacomputing/ada-engine/internal/governance"
	"github.com/adacomputing/ada-engine/internal/insight"
)

// #endregion

// #region query-shape

// QueryShape is the canonical semantic template a query resolves to.
// Tier 3 results from the governance engine may carry a generated
// equation string instead of one of the constants below.
type QueryShape string

const (
	ShapeCapitalOf    QueryShape = "capital(X) = ?"
	ShapeFounderOf    QueryShape = "founder(X) = ?"
	ShapePopulationOf QueryShape = "population(X) = ?"
	ShapeLanguageOf   QueryShape = "language(X) = ?"
	ShapeCurrencyOf   QueryShape = "currency(X) = ?"
	ShapePhysicsLaw   QueryShape = "law(X) = ?"
	ShapeAtomicNumber QueryShape = "atomic_num(X) = ?"
	ShapeUnknown      QueryShape = "UNKNOWN"
)

// #endregion

// #region search-result

// Point is a 2D trajectory sample.
type Point [2]float64

// LexicalInfo is the vocabulary context attached by the governance engine.
type LexicalInfo struct {
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
	Equation   string   `json:"equation"`
	Definition string   `json:"definition,omitempty"`
}

// SearchResult is the envelope returned for every processed query.
type SearchResult struct {
	Tier             int                    `json:"tier"`
	Method           string                 `json:"method"`
	Shape            QueryShape             `json:"shape"`
	Entity           string                 `json:"entity"`
	Confidence       float64                `json:"confidence"`
	Details          string                 `json:"details"`
	InsightText      string                 `json:"insightText"`
	LexicalInfo      *LexicalInfo           `json:"lexicalInfo,omitempty"`
	ScoreVector      governance.ScoreVector `json:"scoreVector"`
	Constraint       governance.Constraint  `json:"constraint"`
	Action           governance.Action      `json:"action"`
	TrajectoryPoints []Point                `json:"trajectoryPoints"`
	IsClosed         bool                   `json:"isClosed"`
	GroundingSources []insight.Source       `json:"groundingSources,omitempty"`
}

// Degraded reports whether r is the Tier-3 failure terminal state.
func (r SearchResult) Degraded() bool {
	return r.Tier == 3 && r.Action == governance.ActionAbstain && r.Confidence == 0
}

// #endregion
