package model

import (
	"math"
)

// SafeLog returns log(x) for positive x and -Inf otherwise; it never
// panics or returns NaN for a non-positive argument.
func SafeLog(x float64) float64 {
	if x > 0 {
		return math.Log(x)
	}
	return math.Inf(-1)
}

// LogLikelihood returns the log-likelihood of the histogram under the
// non-repeat model at coverage c and error rate err. Parameters outside
// the model's domain (err outside [0, 1), c <= 0) yield -Inf, which is the
// domain guard the optimizer steers away from, not an error. The result is
// always finite or -Inf, never NaN.
func (m *Model) LogLikelihood(hist []int64, c, err float64) float64 {
	if err < 0 || err >= 1 || c <= 0 {
		return math.Inf(-1)
	}
	p := m.Probabilities(c, err, len(hist))
	return reduce(hist, func(j int) float64 { return p[j] })
}

// LogLikelihoodRepeats is the repeat-aware counterpart, marginalizing each
// level's probability over the repeat-count mixture governed by prior.
func (m *Model) LogLikelihoodRepeats(hist []int64, c, err float64, prior RepeatPrior) float64 {
	if err < 0 || err >= 1 || c <= 0 {
		return math.Inf(-1)
	}
	dist := m.WithRepeats(c, err, prior, len(hist))
	return reduce(hist, dist.At)
}

// reduce folds the histogram and a probability function into the scalar
// log-likelihood. Zero-count levels contribute nothing and are skipped, so
// log(0) is never taken for them; a NaN from a degenerate sub-computation
// is mapped to -Inf before it escapes this layer.
func reduce(hist []int64, p func(j int) float64) float64 {
	var ll float64
	for j := 1; j < len(hist); j++ {
		if hist[j] == 0 {
			continue
		}
		ll += float64(hist[j]) * SafeLog(p(j))
	}
	if math.IsNaN(ll) {
		return math.Inf(-1)
	}
	return ll
}
