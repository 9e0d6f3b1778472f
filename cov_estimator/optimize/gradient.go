package optimize

import (
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/diff/fd"
	gopt "gonum.org/v1/gonum/optimize"

	"Kmer-Coverage-Estimation/cov_estimator/common"
)

// Gradient minimizes fn from x0 with L-BFGS over a forward-difference
// gradient, projecting every evaluation point onto the box. It returns the
// best point seen across all evaluations, so a failed line search (the
// objective is -Inf-guarded at the domain edges) still yields the best
// iterate instead of an error.
func Gradient(fn Objective, x0 []float64, bounds []common.Bound) []float64 {
	project := func(x []float64) []float64 {
		y := clone(x)
		for i, b := range bounds {
			if y[i] < b.Min {
				y[i] = b.Min
			}
			if y[i] > b.Max {
				y[i] = b.Max
			}
		}
		return y
	}

	best := project(x0)
	bestVal := fn(best)

	objective := func(x []float64) float64 {
		p := project(x)
		val := fn(p)
		if val < bestVal {
			bestVal = val
			best = p
		}
		return val
	}

	problem := gopt.Problem{
		Func: objective,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, objective, x, nil)
		},
	}
	if _, err := gopt.Minimize(problem, project(x0), nil, &gopt.LBFGS{}); err != nil {
		log.Debugf("gradient search stopped: %v", err)
	}
	return best
}
