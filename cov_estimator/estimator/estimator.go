// Package estimator wires the pipeline together: analytic guess from the
// histogram, likelihood optimization, and assembly of the result record.
package estimator

import (
	"context"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"Kmer-Coverage-Estimation/cov_estimator/common"
	"Kmer-Coverage-Estimation/cov_estimator/config"
	"Kmer-Coverage-Estimation/cov_estimator/histogram"
	"Kmer-Coverage-Estimation/cov_estimator/model"
	"Kmer-Coverage-Estimation/cov_estimator/optimize"
	"Kmer-Coverage-Estimation/cov_estimator/report"
)

// Options selects what the estimator runs and from where it starts.
type Options struct {
	Repeats      bool
	UseGrid      bool
	UseHillclimb bool

	// Seed for the hill-climbing coordinate choice.
	Seed int64

	// Overrides for the analytic initial guess.
	GuessedCoverage  *float64
	GuessedErrorRate *float64

	// Externally known ground truth; reported for comparison, never used
	// to seed the search.
	OrigCoverage  *float64
	OrigErrorRate *float64
}

// Estimator fits model parameters to an observed histogram.
type Estimator struct {
	model *model.Model
	opts  Options
}

// New returns an estimator over the given model.
func New(m *model.Model, opts Options) *Estimator {
	return &Estimator{model: m, opts: opts}
}

// Run estimates coverage and error rate for the histogram and returns the
// full result record. Cancelling ctx stops the opt-in refinement strategies
// between rounds; the best point found so far is kept.
func (e *Estimator) Run(ctx context.Context, hist *histogram.Histogram) *report.Result {
	guess := e.initialGuess(hist)
	x0 := guess.Vector()
	bounds := common.Bounds(len(x0))
	fn := e.objective(hist.Counts)

	guessedLL := -fn(x0)
	log.Infof("initial guess: c: %g e: %g ll: %g", guess.Coverage, guess.ErrorRate, guessedLL)

	x := optimize.Gradient(fn, x0, bounds)
	if e.opts.UseGrid {
		log.Infof("starting grid search from: %v", x)
		x = optimize.Grid(ctx, fn, x, bounds)
	}
	if e.opts.UseHillclimb {
		log.Infof("starting hill climb from: %v", x)
		rnd := rand.New(rand.NewSource(e.opts.Seed))
		x = optimize.HillClimb(ctx, fn, x, bounds, rnd, config.HillclimbIterations)
	}
	estimated := common.FromVector(x)

	res := &report.Result{
		EstimatedCoverage:      estimated.Coverage,
		EstimatedErrorRate:     estimated.ErrorRate,
		EstimatedLoglikelihood: report.Loglikelihood(-fn(x)),
		GuessedCoverage:        guess.Coverage,
		GuessedErrorRate:       guess.ErrorRate,
		GuessedLoglikelihood:   report.Loglikelihood(guessedLL),
	}
	if e.opts.Repeats {
		res.EstimatedQ1 = &estimated.Q1
		res.EstimatedQ2 = &estimated.Q2
		res.EstimatedQ = &estimated.Q
	}
	if e.opts.OrigErrorRate != nil {
		res.OriginalErrorRate = e.opts.OrigErrorRate
		if e.opts.OrigCoverage != nil {
			// Likelihood of the ground-truth point, with the repeat
			// weights held at their estimates.
			orig := estimated
			orig.Coverage = *e.opts.OrigCoverage
			orig.ErrorRate = *e.opts.OrigErrorRate
			ll := report.Loglikelihood(-fn(orig.Vector()))
			res.OriginalLoglikelihood = &ll
		}
	}
	return res
}

// initialGuess produces the starting point: the analytic guess, with any
// per-field override applied, and the fixed fallback substituted for the
// degenerate (0, 1) pair, which is not a usable search start.
func (e *Estimator) initialGuess(hist *histogram.Histogram) common.Params {
	cov, errRate := hist.Guess(e.model.KmerSize, e.model.ReadLength)
	if e.opts.GuessedCoverage != nil {
		cov = *e.opts.GuessedCoverage
	}
	if e.opts.GuessedErrorRate != nil {
		errRate = *e.opts.GuessedErrorRate
	}
	if cov == 0 && errRate == 1 {
		log.Infof("degenerate guess, falling back to c: %g e: %g",
			config.FallbackCoverage, config.FallbackErrorRate)
		cov, errRate = config.FallbackCoverage, config.FallbackErrorRate
	}
	p := common.Params{Coverage: cov, ErrorRate: errRate}
	if e.opts.Repeats {
		p.Repeats = true
		p.Q1, p.Q2, p.Q = 0.5, 0.5, 0.5
	}
	return p
}

// objective is the negated log-likelihood of the histogram at a parameter
// vector, the common currency of all three search strategies.
func (e *Estimator) objective(counts []int64) optimize.Objective {
	if e.opts.Repeats {
		return func(x []float64) float64 {
			prior := model.RepeatPrior{Q1: x[2], Q2: x[3], Q: x[4]}
			return -e.model.LogLikelihoodRepeats(counts, x[0], x[1], prior)
		}
	}
	return func(x []float64) float64 {
		return -e.model.LogLikelihood(counts, x[0], x[1])
	}
}
