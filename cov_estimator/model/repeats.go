package model

import (
	"Kmer-Coverage-Estimation/cov_estimator/config"
)

// RepeatPrior is the discrete prior over the number of genomic loci sharing
// one k-mer sequence: q1 is the probability of a unique k-mer, q2 splits
// off the two-locus case, and q parameterizes the geometric tail over
// higher repeat counts. The value is immutable.
type RepeatPrior struct {
	Q1, Q2, Q float64
}

// At returns the prior mass of repeat multiplicity o (o >= 1).
func (p RepeatPrior) At(o int) float64 {
	switch o {
	case 1:
		return p.Q1
	case 2:
		return (1 - p.Q1) * p.Q2
	default:
		tail := 1.0
		for i := 0; i < o-3; i++ {
			tail *= 1 - p.Q
		}
		return (1 - p.Q1) * (1 - p.Q2) * p.Q * tail
	}
}

// Truncation returns the smallest o in [1, histSize) whose prior mass falls
// below the tolerance, or 0 when no such o exists. Contributions at and
// beyond the returned bound are numerically negligible, which is what keeps
// the repeat table finite.
func (p RepeatPrior) Truncation(histSize int, tolerance float64) int {
	for o := 1; o < histSize; o++ {
		if p.At(o) < tolerance {
			return o
		}
	}
	return 0
}

// RepeatTable returns the triangular table t with t[o][j] = P(observed
// multiplicity = j | k-mer occurs at o loci) for o = 1..thresholdO-1 and
// j = 1..histSize-1. Row 1 is the base probability vector; row o is the
// discrete convolution of row 1 with row o-1. A thresholdO of 0 means no
// truncation and builds rows up to histSize-1. The table is cached and
// must not be modified.
func (m *Model) RepeatTable(c, err float64, histSize, thresholdO int) [][]float64 {
	key := tableKey{
		r: m.ReadLength, k: m.KmerSize,
		c: c, err: err,
		histSize: histSize, thresholdO: thresholdO,
	}
	return m.tables.GetOrCompute(key, func() [][]float64 {
		return m.computeRepeatTable(c, err, histSize, thresholdO)
	})
}

func (m *Model) computeRepeatTable(c, err float64, histSize, thresholdO int) [][]float64 {
	base := m.Probabilities(c, err, histSize)
	if thresholdO == 0 {
		thresholdO = histSize
	}

	// Rows 0 and 1 always exist, even when the truncation bound is below 2;
	// the marginal never reads rows at or beyond the bound.
	table := make([][]float64, 2)
	table[0] = nil
	table[1] = base

	for o := 2; o < thresholdO; o++ {
		row := make([]float64, histSize)
		prev := table[o-1]
		for j := 1; j < histSize; j++ {
			// An o-locus k-mer observed j times splits its
			// observations between one locus and the remaining o-1.
			var res float64
			for i := 1; i < j; i++ {
				res += base[i] * prev[j-i]
			}
			row[j] = res
		}
		table = append(table, row)
	}
	return table
}

// RepeatDistribution is the observed-multiplicity distribution marginalized
// over the repeat count: a probability vector mixing the repeat table's rows
// by the prior. It replaces ad-hoc closures over the repeat parameters so
// the marginal can be evaluated and tested on its own.
type RepeatDistribution struct {
	prior      RepeatPrior
	table      [][]float64
	thresholdO int
}

// WithRepeats builds the marginalized distribution for the given parameters,
// truncating the repeat mixture where the prior mass drops below the
// configured tolerance.
func (m *Model) WithRepeats(c, err float64, prior RepeatPrior, histSize int) *RepeatDistribution {
	thresholdO := prior.Truncation(histSize, config.RepeatPriorTolerance)
	return &RepeatDistribution{
		prior:      prior,
		table:      m.RepeatTable(c, err, histSize, thresholdO),
		thresholdO: thresholdO,
	}
}

// At returns P(observed multiplicity = j), summing prior-weighted rows for
// o = 1..min(j, o*-1). Rows at or beyond the truncation bound were never
// built and are never read; an o-locus k-mer needs at least o observations,
// so rows above j contribute nothing and are skipped as well.
func (d *RepeatDistribution) At(j int) float64 {
	limit := j
	if d.thresholdO > 0 && limit > d.thresholdO-1 {
		limit = d.thresholdO - 1
	}
	if max := len(d.table) - 1; limit > max {
		limit = max
	}
	var res float64
	for o := 1; o <= limit; o++ {
		res += d.prior.At(o) * d.table[o][j]
	}
	return res
}
