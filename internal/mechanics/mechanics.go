// Package mechanics turns a word into glyph statistics and a structural profile.
package mechanics

// #region imports
import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/adacomputing/ada-engine/internal/glyph"
)

// #endregion

// #region types

// Stats counts glyphs per physical property. UNKNOWN glyphs are not counted.
type Stats struct {
	Stability   int `json:"stability"`
	Containment int `json:"containment"`
	Energy      int `json:"energy"`
	Flow        int `json:"flow"`
	Stop        int `json:"stop"`
	Alignment   int `json:"alignment"`
}

// AnalysisResult is the output of Analyze.
type AnalysisResult struct {
	Word     string        `json:"word"`
	Glyphs   []glyph.Glyph `json:"glyphs"`
	Stats    Stats         `json:"stats"`
	Profile  string        `json:"profile"`
	LoadPath string        `json:"loadPath"`
}

// #endregion

// #region profiles

const (
	ProfileAmorphous     = "AMORPHOUS"
	ProfileArchitectural = "ARCHITECTURAL (Static)"
	ProfileDynamic       = "DYNAMIC (Engine)"
	ProfileVessel        = "VESSEL (Holding)"
	ProfileFluid         = "FLUID DYNAMIC"
	ProfileTool          = "TOOL / WEAPON"
)

type profileRule struct {
	match func(Stats) bool
	label string
}

// profileRules are evaluated in order against the final stats; the last
// matching rule sets the profile.
var profileRules = []profileRule{
	{func(s Stats) bool { return s.Stop > 0 && s.Stability > 0 }, ProfileArchitectural},
	{func(s Stats) bool { return s.Energy > 0 && s.Containment > 0 }, ProfileDynamic},
	{func(s Stats) bool { return s.Containment > 0 && s.Stop == 0 }, ProfileVessel},
	{func(s Stats) bool { return s.Flow > 0 && s.Energy > 0 }, ProfileFluid},
	{func(s Stats) bool { return s.Stop > 0 && s.Energy > 0 && s.Alignment > 0 }, ProfileTool},
}

// Classify returns the profile label for s.
func Classify(s Stats) string {
	profile := ProfileAmorphous
	for _, r := range profileRules {
		if r.match(s) {
			profile = r.label
		}
	}
	return profile
}

// #endregion

// #region analyze

// fallbackChar stands in for input with no A-Z letters.
const fallbackChar = 'A'

// Analyze maps each letter of word to its glyph and aggregates the result.
// Pure and deterministic.
func Analyze(word string) AnalysisResult {
	clean := Clean(word)
	if clean == "" {
		clean = string(fallbackChar)
	}

	glyphs := make([]glyph.Glyph, 0, len(clean))
	roles := make([]string, 0, len(clean))
	var stats Stats
	for _, c := range clean {
		g := glyph.Lookup(c)
		glyphs = append(glyphs, g)
		roles = append(roles, g.Role)
		stats.add(g.Property)
	}

	return AnalysisResult{
		Word:     word,
		Glyphs:   glyphs,
		Stats:    stats,
		Profile:  Classify(stats),
		LoadPath: strings.Join(roles, " -> "),
	}
}

// Clean uppercases word with full Unicode case mapping (ß becomes SS) and
// drops everything outside A-Z.
func Clean(word string) string {
	upper := cases.Upper(language.Und).String(word)
	var b strings.Builder
	b.Grow(len(upper))
	for i := 0; i < len(upper); i++ {
		if c := upper[i]; c >= 'A' && c <= 'Z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (s *Stats) add(p glyph.PhysicalProperty) {
	switch p {
	case glyph.Stability:
		s.Stability++
	case glyph.Containment:
		s.Containment++
	case glyph.Energy:
		s.Energy++
	case glyph.Flow:
		s.Flow++
	case glyph.Stop:
		s.Stop++
	case glyph.Alignment:
		s.Alignment++
	}
}

// Total is the number of counted glyphs.
func (s Stats) Total() int {
	return s.Stability + s.Containment + s.Energy + s.Flow + s.Stop + s.Alignment
}

// #endregion
