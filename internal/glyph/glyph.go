// Package glyph holds the static letter table used by word mechanics.
package glyph

// #region physical-property

// PhysicalProperty is the mechanical category a letter shape stands for.
type PhysicalProperty string

const (
	Stability   PhysicalProperty = "STABILITY"   // triangular/vertical frames
	Containment PhysicalProperty = "CONTAINMENT" // enclosed or lobed shapes
	Flow        PhysicalProperty = "FLOW"        // curves and paths
	Stop        PhysicalProperty = "STOP"        // hard boundaries
	Energy      PhysicalProperty = "ENERGY"      // potential/kinetic stores
	Alignment   PhysicalProperty = "ALIGNMENT"   // axial direction
	Unknown     PhysicalProperty = "UNKNOWN"
)

// #endregion physical-property

// #region glyph

// Glyph is one letter's mechanical metaphor.
type Glyph struct {
	Char     string           `json:"char"`
	Role     string           `json:"role"`
	Property PhysicalProperty `json:"physics"`
	Vector   string           `json:"vector"`
}

// #endregion glyph

// #region table

var table = map[rune]Glyph{
	'A': {"A", "Frame", Stability, "Static equilibrium, load distribution"},
	'B': {"B", "Dual Lobes", Containment, "Volume storage, redundancy"},
	'C': {"C", "Open Arc", Flow, "Directional aperture, reception"},
	'D': {"D", "Mass", Containment, "Gravitational load, heavy state"},
	'E': {"E", "Tiers", Energy, "Layering, hierarchical distribution"},
	'F': {"F", "Cantilever", Energy, "Reach, leverage, moment arm"},
	'G': {"G", "Hook", Containment, "Capture, gating, flow control"},
	'H': {"H", "Pillars", Stability, "Bridging, tensile span"},
	'I': {"I", "Axis", Alignment, "Linear direction, verticality"},
	'J': {"J", "Swing", Flow, "Redirected inertia"},
	'K': {"K", "Shear", Stop, "Kinetic impact, cutting action"},
	'L': {"L", "Bend", Flow, "Flow redirection, pooling"},
	'M': {"M", "Wave", Stability, "Harmonic frequency, stable base"},
	'N': {"N", "Bridge", Flow, "State transition, transfer"},
	'O': {"O", "Loop", Containment, "Complete volume enclosure"},
	'P': {"P", "Bulb", Energy, "Pressure, stored potential"},
	'Q': {"Q", "Queue", Containment, "Restricted exit volume"},
	'R': {"R", "Brace", Energy, "Resistance, force opposition"},
	'S': {"S", "Curve", Flow, "Slip, flexibility, low friction"},
	'T': {"T", "Post", Stop, "Hard stop, limit, impact boundary"},
	'U': {"U", "Vessel", Containment, "Reception, holding capacity"},
	'V': {"V", "Focus", Alignment, "Vector convergence, concentration"},
	'W': {"W", "Valley", Energy, "Oscillatory motion, instability"},
	'X': {"X", "Cross", Stop, "Torsional rigidity, locking"},
	'Y': {"Y", "Fork", Alignment, "Distribution, flow splitting"},
	'Z': {"Z", "Zigzag", Alignment, "Rapid direction change"},
}

// #endregion table

// #region lookup

// Lookup returns the glyph for c. Characters outside the table get a
// synthesized UNKNOWN glyph instead of an error.
func Lookup(c rune) Glyph {
	if g, ok := table[c]; ok {
		return g
	}
	return Glyph{Char: string(c), Role: "UNK", Property: Unknown, Vector: "Unknown"}
}

// All returns a copy of the table in A-Z order.
func All() []Glyph {
	out := make([]Glyph, 0, len(table))
	for c := 'A'; c <= 'Z'; c++ {
		out = append(out, table[c])
	}
	return out
}

// #endregion lookup
