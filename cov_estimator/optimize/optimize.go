// Package optimize drives the likelihood objective through a bounded
// continuous-parameter search. Three strategies cooperate on the same
// negated log-likelihood and the same box constraints: a quasi-Newton
// gradient search always runs first, and the multiplicative grid search and
// randomized hill climbing are opt-in refinements. No strategy ever widens
// the bounds it is given.
package optimize

import (
	"math"

	"Kmer-Coverage-Estimation/cov_estimator/common"
)

// Objective is the function being minimized, the negated log-likelihood of
// the histogram at a parameter vector.
type Objective func(x []float64) float64

// candidates returns the multiplicative grid around one coordinate value:
// v*step^d for d in [-depth, depth], d != 0, filtered to the bound.
func candidates(v, step float64, depth int, b common.Bound) []float64 {
	out := make([]float64, 0, 2*depth)
	for d := -depth; d <= depth; d++ {
		if d == 0 {
			continue
		}
		cand := v * math.Pow(step, float64(d))
		if b.Contains(cand) {
			out = append(out, cand)
		}
	}
	return out
}

// product visits the full Cartesian product of the per-coordinate grids.
// The vector passed to visit is reused between calls; visit must copy it if
// it keeps it. An empty grid in any coordinate makes the product empty.
func product(grids [][]float64, visit func(x []float64)) {
	for _, g := range grids {
		if len(g) == 0 {
			return
		}
	}
	idx := make([]int, len(grids))
	x := make([]float64, len(grids))
	for {
		for i, g := range grids {
			x[i] = g[idx[i]]
		}
		visit(x)

		i := len(grids) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(grids[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return
		}
	}
}

func clone(x []float64) []float64 {
	y := make([]float64, len(x))
	copy(y, x)
	return y
}
