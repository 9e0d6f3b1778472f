package histogram

import (
	"math"

	"Kmer-Coverage-Estimation/cov_estimator/config"
)

// estimateP backs the probability of an error-free k-mer out of the
// mixture-balance equation relating coverage and the error-singleton share.
func estimateP(cc, alpha float64) float64 {
	return (cc * (alpha - 1)) / (alpha*cc - alpha - cc)
}

// Guess derives an initial (read coverage, per-base error rate) pair from
// the histogram's aggregate statistics alone, without any iterative search
// over the likelihood.
//
// When no distinct k-mer was observed at least twice the guess degenerates
// to (0, 1); callers must detect that pair and substitute a usable fallback
// before starting an optimization.
func (h *Histogram) Guess(k, r int) (coverage, errorRate float64) {
	if h.UniqueKmers == 0 {
		return 0.0, 1.0
	}
	totalUniqueKmers := float64(h.UniqueKmers + h.ObservedOnes)

	// Coverage as seen by levels >= 2, then corrected for the k-mers the
	// histogram cannot see (zero or one observation).
	cov := h.AllKmers / float64(h.UniqueKmers)
	visible := func(c float64) float64 {
		return (c - c*math.Exp(-c)) / (1 - math.Exp(-c) - c*math.Exp(-c))
	}
	cov = Invert(visible, config.InverterDomainLow)(cov)

	// Scale the distinct count up by the unseen share.
	uniqueKmers := float64(h.UniqueKmers) / (1 - math.Exp(-cov) - cov*math.Exp(-cov))

	// Split the observed singletons into true one-coverage k-mers and
	// error-induced ones; the excess drives the error-rate estimate.
	estimatedOnes := uniqueKmers * cov * math.Exp(-cov)
	estimatedZeros := uniqueKmers * math.Exp(-cov)
	errorOnes := math.Max(0.0, float64(h.ObservedOnes)-estimatedOnes)
	alpha := errorOnes / (totalUniqueKmers + estimatedZeros)

	estimatedP := math.Max(0.0, estimateP(cov, alpha))
	e := 1 - math.Pow(estimatedP, 1/float64(k))
	if estimatedP <= 0 {
		return 0.0, e
	}
	// k-mer coverage to read coverage.
	return (cov / estimatedP) * float64(r) / float64(r-k+1), e
}
