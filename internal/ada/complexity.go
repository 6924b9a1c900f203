package ada

import "strings"

// Complexity is the register the answer is written in.
type Complexity string

const (
	ComplexityELI5      Complexity = "ELI5"
	ComplexityStandard  Complexity = "STANDARD"
	ComplexityTechnical Complexity = "TECHNICAL"
)

// ParseComplexity is case-insensitive. Unknown or blank input yields
// ComplexityStandard and ok=false.
func ParseComplexity(s string) (Complexity, bool) {
	switch c := Complexity(strings.ToUpper(strings.TrimSpace(s))); c {
	case ComplexityELI5, ComplexityStandard, ComplexityTechnical:
		return c, true
	}
	return ComplexityStandard, false
}
