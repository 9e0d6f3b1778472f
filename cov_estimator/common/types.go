package common

import "math"

// Params is one point in the estimator's parameter space.
// Coverage is read-level coverage, ErrorRate a per-base substitution rate.
// Q1, Q2 and Q are the repeat-prior weights; they are meaningful only when
// Repeats is set.
type Params struct {
	Coverage  float64
	ErrorRate float64
	Q1        float64
	Q2        float64
	Q         float64
	Repeats   bool
}

// Vector flattens the parameters into the search vector the optimizer
// operates on: (c, e) for the base model, (c, e, q1, q2, q) with repeats.
func (p Params) Vector() []float64 {
	if p.Repeats {
		return []float64{p.Coverage, p.ErrorRate, p.Q1, p.Q2, p.Q}
	}
	return []float64{p.Coverage, p.ErrorRate}
}

// FromVector is the inverse of Params.Vector.
func FromVector(x []float64) Params {
	p := Params{Coverage: x[0], ErrorRate: x[1]}
	if len(x) > 2 {
		p.Q1, p.Q2, p.Q = x[2], x[3], x[4]
		p.Repeats = true
	}
	return p
}

// Bound is a closed interval constraint on one search coordinate.
// Max may be +Inf for a half-open box.
type Bound struct {
	Min float64
	Max float64
}

// Contains reports whether v satisfies the bound.
func (b Bound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Bounds returns the box constraints matching a search vector of the given
// dimension: coverage is non-negative and unbounded above, every other
// coordinate (error rate and repeat weights) lives in [0, 1].
func Bounds(dim int) []Bound {
	bounds := make([]Bound, dim)
	bounds[0] = Bound{Min: 0, Max: math.Inf(1)}
	for i := 1; i < dim; i++ {
		bounds[i] = Bound{Min: 0, Max: 1}
	}
	return bounds
}
