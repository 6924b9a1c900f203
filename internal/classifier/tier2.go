package classifier

// #region imports
import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/adacomputing/ada-engine/internal/governance"
)

// #endregion

// #region tokenize

var nonToken = regexp.MustCompile(`[^a-z0-9 ]`)

// entityStopwords are dropped when building a Tier-2 entity.
var entityStopwords = map[string]bool{
	"what": true, "does": true, "from": true, "the": true, "who": true, "is": true,
}

// Tokenize lowercases query, strips everything outside [a-z0-9 ], splits on
// single spaces and drops tokens of two characters or fewer.
func Tokenize(query string) []string {
	cleaned := nonToken.ReplaceAllString(strings.ToLower(query), "")
	var tokens []string
	for _, w := range strings.Split(cleaned, " ") {
		if len(w) > 2 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// #endregion

// #region resonance

// resonate returns the cluster with the strictly highest overlap and its
// count. A zero count means nothing resonated.
func resonate(tokens []string) (*Cluster, int) {
	var best *Cluster
	score := 0
	for i := range clusters {
		overlap := 0
		for _, t := range tokens {
			if clusters[i].Keywords[t] {
				overlap++
			}
		}
		if overlap > score {
			best, score = &clusters[i], overlap
		}
	}
	return best, score
}

func buildEntity(tokens []string, c *Cluster) string {
	var parts []string
	for _, t := range tokens {
		if c.Keywords[t] || entityStopwords[t] {
			continue
		}
		parts = append(parts, strings.ToUpper(t[:1])+t[1:])
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, " ")
}

// #endregion

// #region match-tier2

// matchTier2 scores the query against the semantic clusters.
func matchTier2(query string) (SearchResult, bool) {
	tokens := Tokenize(query)
	best, score := resonate(tokens)
	if score < 1 {
		return SearchResult{}, false
	}
	entity := buildEntity(tokens, best)
	return SearchResult{
		Tier:             2,
		Method:           "Semantic Cluster Resonance",
		Shape:            best.Shape,
		Entity:           entity,
		Confidence:       math.Min(0.95, 0.7+0.1*float64(score)),
		Details:          fmt.Sprintf("Resonated with [%s] cluster. Overlap score: %d.", best.Name, score),
		InsightText:      fmt.Sprintf("Heuristic match suggests %s correlates with %s.", entity, best.Shape),
		ScoreVector:      governance.ScoreVector{C: 0.85, M: 0.05, F: 0.1, K: 0.85, State: governance.StatePartial},
		Constraint:       governance.Constraint{Status: governance.StatusYellow, Ratio: 0.9},
		Action:           governance.ActionRespond,
		TrajectoryPoints: []Point{{0, 0}, {0.5, 0.5}, {1, 1}},
		IsClosed:         true,
	}, true
}

// #endregion
