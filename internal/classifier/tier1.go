package classifier

// #region imports
import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adacomputing/ada-engine/internal/governance"
)

// #endregion

// #region patterns

type pattern struct {
	re    *regexp.Regexp
	shape QueryShape
}

// First match wins.
var patterns = []pattern{
	{regexp.MustCompile(`(?i)capital of (.+)`), ShapeCapitalOf},
	{regexp.MustCompile(`(?i)who founded (.+)`), ShapeFounderOf},
	{regexp.MustCompile(`(?i)population of (.+)`), ShapePopulationOf},
	{regexp.MustCompile(`(?i)atomic number of (.+)`), ShapeAtomicNumber},
	{regexp.MustCompile(`(?i)(.+?)('s)? law`), ShapePhysicsLaw},
}

// #endregion

// #region match-tier1

// matchTier1 applies the rigid patterns to the full query.
func matchTier1(query string) (SearchResult, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		entity := strings.TrimSpace(m[1])
		return SearchResult{
			Tier:             1,
			Method:           "Rigid Pattern Match",
			Shape:            p.shape,
			Entity:           entity,
			Confidence:       1.0,
			Details:          "Exact regex match found. Signal clarity: 100%.",
			InsightText:      fmt.Sprintf("Rigid resolution complete for %s. Mapping to %s schema.", entity, p.shape),
			ScoreVector:      governance.ScoreVector{C: 1, M: 0, F: 0, K: 1, State: governance.StateCorrect},
			Constraint:       governance.Constraint{Status: governance.StatusGreen, Ratio: 1.0},
			Action:           governance.ActionRespond,
			TrajectoryPoints: []Point{{0, 0}, {1, 1}},
			IsClosed:         true,
		}, true
	}
	return SearchResult{}, false
}

// #endregion
