package optimize

import (
	"context"

	log "github.com/sirupsen/logrus"

	"Kmer-Coverage-Estimation/cov_estimator/common"
	"Kmer-Coverage-Estimation/cov_estimator/config"
)

// Grid refines x0 by rounds of exhaustive multiplicative grid search. Each
// round evaluates the Cartesian product of per-coordinate grids around the
// current best point; the multiplicative step shrinks geometrically whenever
// a round's cumulative improvement falls below the decay trigger. The loop
// ends when a round improves by less than the minimum improvement and the
// step has decayed to the final step, or when ctx is cancelled between
// rounds; cancellation returns the best point found so far.
func Grid(ctx context.Context, fn Objective, x0 []float64, bounds []common.Bound) []float64 {
	best := clone(x0)
	bestVal := fn(best)
	step := config.GridStep
	diff := 1.0
	round := 0

	for diff > config.GridMinImprovement || step > config.GridFinalStep {
		select {
		case <-ctx.Done():
			log.Info("grid search interrupted")
			return best
		default:
		}

		round++
		diff = 0
		grids := make([][]float64, len(best))
		for i, v := range best {
			grids[i] = candidates(v, step, config.GridDepth, bounds[i])
		}
		product(grids, func(x []float64) {
			if val := fn(x); val < bestVal {
				diff += bestVal - val
				bestVal = val
				best = clone(x)
			}
		})
		if diff < config.GridDecayTrigger {
			step = 1 + (step-1)*config.GridStepDecay
		}
		log.Infof("grid round %d: improvement %.4g, step %.6g", round, diff, step)
	}
	log.Infof("grid search finished after %d rounds", round)
	return best
}
