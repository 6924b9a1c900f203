package ada

// #region imports
import (
	"github.com/adacomputing/ada-engine/internal/bezier"
	"github.com/adacomputing/ada-engine/internal/classifier"
)

// #endregion

// #region trajectory

// trajectorySegments gives 21 sample points.
const trajectorySegments = 20

// Curve returns the drift curve for misconception m. Higher m bends the
// path further away from the diagonal.
func Curve(m float64) *bezier.Primitive {
	return bezier.New(
		bezier.Vector{0, 0},
		bezier.Vector{0.1 + m*0.4, 0.5 + m*0.8},
		bezier.Vector{0.9 - m*0.4, 0.5 - m*0.2},
		bezier.Vector{1, 1},
	)
}

// Trajectory samples Curve(m) and reports its closure.
func Trajectory(m float64) ([]classifier.Point, bool) {
	curve := Curve(m)
	samples := curve.Sample(trajectorySegments)
	points := make([]classifier.Point, len(samples))
	for i, v := range samples {
		points[i] = classifier.Point{v[0], v[1]}
	}
	return points, curve.CheckClosure()
}

// #endregion
