package histogram

import (
	"math"

	"Kmer-Coverage-Estimation/cov_estimator/config"
)

// Invert returns the inverse of f, an increasing function on (lo, +inf).
// The returned function solves f(x) = y by expanding an upper bracket by
// powers of ten until it encloses the target, then bisecting a fixed number
// of iterations. There is no closed-form inverse for the coverage
// correction this serves, so a numeric inversion is the contract.
func Invert(f func(float64) float64, lo float64) func(float64) float64 {
	return func(y float64) float64 {
		if f(lo) >= y {
			return lo
		}
		hi := math.Max(lo*10, 1.0)
		for f(hi) < y && !math.IsInf(hi, 1) {
			hi *= 10
		}
		if math.IsInf(hi, 1) {
			return hi
		}

		low, high := lo, hi
		for i := 0; i < config.InverterBisectionIter; i++ {
			mid := (low + high) / 2
			v := f(mid)
			if v == y {
				return mid
			}
			if v < y {
				low = mid
			} else {
				high = mid
			}
		}
		return (low + high) / 2
	}
}
