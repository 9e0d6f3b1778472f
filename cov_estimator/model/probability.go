package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"

	"Kmer-Coverage-Estimation/cov_estimator/cache"
	"Kmer-Coverage-Estimation/cov_estimator/config"
)

// Model computes observed-multiplicity probabilities for k-mers of a fixed
// read geometry. Probability vectors and repeat tables are memoized in
// bounded LRU caches keyed by the exact parameter tuples, so re-evaluating
// a point the optimizer has already visited never recomputes.
//
// A Model is not safe for concurrent use; evaluation is sequential by
// design and the caches are unsynchronized.
type Model struct {
	ReadLength int
	KmerSize   int

	arith  Arithmetic
	probs  *cache.Cache[probKey, []float64]
	tables *cache.Cache[tableKey, [][]float64]
}

type probKey struct {
	r, k    int
	c, err  float64
	maxHist int
}

type tableKey struct {
	r, k       int
	c, err     float64
	histSize   int
	thresholdO int
}

// New returns a model for the given read length and k-mer size, evaluating
// through the supplied arithmetic.
func New(readLength, kmerSize int, arith Arithmetic) *Model {
	return &Model{
		ReadLength: readLength,
		KmerSize:   kmerSize,
		arith:      arith,
		probs:      cache.New[probKey, []float64](config.CacheCapacity),
		tables:     cache.New[tableKey, [][]float64](config.CacheCapacity),
	}
}

// Probabilities returns the vector p with p[j] = P(observed multiplicity
// = j | non-repeated k-mer) for j = 1..maxHist-1; index 0 is unused and
// zero. The returned slice is cached and must not be modified.
func (m *Model) Probabilities(c, err float64, maxHist int) []float64 {
	key := probKey{r: m.ReadLength, k: m.KmerSize, c: c, err: err, maxHist: maxHist}
	return m.probs.GetOrCompute(key, func() []float64 {
		return m.computeProbabilities(c, err, maxHist)
	})
}

func (m *Model) computeProbabilities(c, err float64, maxHist int) []float64 {
	r, k := float64(m.ReadLength), m.KmerSize

	// Read-level to k-mer-level coverage.
	ck := c * (r - float64(k) + 1) / r

	// Poisson rate for k-mers carrying exactly s errors: each error
	// position has three substitution alternatives, so a specific
	// erroneous k-mer is 3^-s times rarer.
	ls := make([]float64, k+1)
	ns := make([]float64, k+1)
	for s := 0; s <= k; s++ {
		ls[s] = ck * math.Pow(3, -float64(s)) *
			math.Pow(1-err, float64(k-s)) * math.Pow(err, float64(s))
		// Expected share of the class with at least one observation,
		// weighted by the number of distinct s-error variants.
		ns[s] = float64(combin.Binomial(k, s)) * math.Pow(3, float64(s)) * -math.Expm1(-ls[s])
	}

	sum := floats.Sum(ns)
	if sum == 0 {
		// All classes vanished; keep the weights at zero instead of
		// dividing by zero. The resulting vector is all-zero, which is
		// a valid degenerate output.
		sum = 1
	}
	as := ns
	floats.Scale(1/sum, as)

	p := make([]float64, maxHist)
	for j := 1; j < maxHist; j++ {
		var pj float64
		for s := 0; s <= k; s++ {
			if as[s] > 0 {
				pj += as[s] * m.arith.TruncatedPoisson(ls[s], j)
			}
		}
		p[j] = pj
	}
	return p
}
