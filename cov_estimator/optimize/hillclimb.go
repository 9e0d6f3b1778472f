package optimize

import (
	"context"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"Kmer-Coverage-Estimation/cov_estimator/common"
	"Kmer-Coverage-Estimation/cov_estimator/config"
)

// HillClimb refines x0 by randomized coordinate descent: each iteration
// picks one coordinate with rnd, evaluates the multiplicative grid on that
// coordinate alone, and keeps any improvement. It runs a fixed iteration
// budget regardless of improvement rate; cancelling ctx between iterations
// returns the best point found so far. The random source is supplied by the
// caller so runs can be made deterministic.
func HillClimb(ctx context.Context, fn Objective, x0 []float64, bounds []common.Bound, rnd *rand.Rand, iterations int) []float64 {
	best := clone(x0)
	bestVal := fn(best)

	for iter := 0; iter < iterations; iter++ {
		select {
		case <-ctx.Done():
			log.Info("hill climb interrupted")
			return best
		default:
		}

		coord := rnd.Intn(len(best))
		grids := make([][]float64, len(best))
		for i, v := range best {
			if i == coord {
				grids[i] = candidates(v, config.GridStep, config.GridDepth, bounds[i])
			} else {
				grids[i] = []float64{v}
			}
		}
		modified := false
		product(grids, func(x []float64) {
			if val := fn(x); val < bestVal {
				bestVal = val
				best = clone(x)
				modified = true
			}
		})
		log.Debugf("hill climb %d: coord %d, improved %v", iter+1, coord, modified)
	}
	return best
}
