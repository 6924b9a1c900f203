// Package bezier evaluates cubic Bezier curves used for confidence trajectories.
package bezier

import "math"

// #region vector

// Vector is a point of arbitrary dimension.
type Vector []float64

// closureTolerance is the per-component tolerance of CheckClosure.
const closureTolerance = 0.05

func (v Vector) clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// at reads component i, treating missing components as zero.
func (v Vector) at(i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// Equal reports whether every component of v is within tol of o.
func (v Vector) Equal(o Vector, tol float64) bool {
	for i, x := range v {
		if math.Abs(x-o.at(i)) >= tol {
			return false
		}
	}
	return true
}

// #endregion vector

// #region primitive

// Primitive is a cubic Bezier curve defined by four control points.
// It owns copies of its control points.
type Primitive struct {
	p0, p1, p2, p3 Vector
}

// New builds a curve from P0..P3. The inputs are copied, not retained.
func New(p0, p1, p2, p3 Vector) *Primitive {
	return &Primitive{p0: p0.clone(), p1: p1.clone(), p2: p2.clone(), p3: p3.clone()}
}

// ControlPoints returns copies of P0..P3.
func (b *Primitive) ControlPoints() [4]Vector {
	return [4]Vector{b.p0.clone(), b.p1.clone(), b.p2.clone(), b.p3.clone()}
}

// Evaluate returns the point at parameter t using the Bernstein form
// (1-t)^3 P0 + 3(1-t)^2 t P1 + 3(1-t) t^2 P2 + t^3 P3.
// The result has the dimension of P0.
func (b *Primitive) Evaluate(t float64) Vector {
	mt := 1 - t
	w0 := mt * mt * mt
	w1 := 3 * mt * mt * t
	w2 := 3 * mt * t * t
	w3 := t * t * t

	out := make(Vector, len(b.p0))
	for i := range out {
		out[i] = (w0*b.p0.at(i) + w1*b.p1.at(i)) + (w2*b.p2.at(i) + w3*b.p3.at(i))
	}
	return out
}

// CheckClosure compares Evaluate(1) against P3 with a 0.05 tolerance.
// At t=1 the polynomial reduces to P3 exactly, so this holds for every
// curve with finite control points.
func (b *Primitive) CheckClosure() bool {
	return b.Evaluate(1).Equal(b.p3, closureTolerance)
}

// Sample returns segments+1 points at t = i/segments. segments < 1 yields
// just the two endpoints.
func (b *Primitive) Sample(segments int) []Vector {
	if segments < 1 {
		segments = 1
	}
	pts := make([]Vector, 0, segments+1)
	for i := 0; i <= segments; i++ {
		pts = append(pts, b.Evaluate(float64(i)/float64(segments)))
	}
	return pts
}

// #endregion primitive
