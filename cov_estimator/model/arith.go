package model

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	log "github.com/sirupsen/logrus"

	"Kmer-Coverage-Estimation/cov_estimator/config"
)

// Arithmetic evaluates the numerically fragile kernel of the model.
// Implementations differ only in working precision; both honor the same
// contract: the result is a finite probability, and any overflow or invalid
// floating-point condition inside the computation yields exactly 0 rather
// than a NaN or an infinity.
type Arithmetic interface {
	// TruncatedPoisson returns P(X = j | X >= 1) for X ~ Poisson(lambda),
	// that is lambda^j / (j! * (e^lambda - 1)). For lambda at or below the
	// small-rate threshold the denominator e^lambda - 1 is replaced by
	// lambda, avoiding the catastrophic cancellation near zero.
	TruncatedPoisson(lambda float64, j int) float64

	// Precision returns the mantissa size of the working type in bits.
	Precision() uint
}

// BigArith computes through math/big floats, so lambda^j and j! may exceed
// the float64 range individually as long as their ratio does not.
type BigArith struct {
	prec uint
}

// NewBigArith returns extended-precision arithmetic with the given mantissa
// size; bits of 0 selects the configured default.
func NewBigArith(bits uint) BigArith {
	if bits == 0 {
		bits = config.BigFloatPrecision
	}
	return BigArith{prec: bits}
}

func (a BigArith) Precision() uint { return a.prec }

func (a BigArith) TruncatedPoisson(lambda float64, j int) float64 {
	if lambda <= 0 || j < 1 {
		return 0.0
	}

	lam := new(big.Float).SetPrec(a.prec).SetFloat64(lambda)

	// lambda^j by squaring; j is a histogram index, always small enough
	// for the exact integer exponent.
	num := new(big.Float).SetPrec(a.prec).SetFloat64(1)
	base := new(big.Float).SetPrec(a.prec).Set(lam)
	for n := j; n > 0; n >>= 1 {
		if n&1 == 1 {
			num.Mul(num, base)
		}
		base.Mul(base, base)
	}

	den := new(big.Float).SetPrec(a.prec).SetInt(new(big.Int).MulRange(1, int64(j)))
	if lambda > config.SmallLambdaThreshold {
		tail := bigfloat.Exp(lam)
		tail.Sub(tail, big.NewFloat(1).SetPrec(a.prec))
		den.Mul(den, tail)
	} else {
		den.Mul(den, lam)
	}
	if den.Sign() == 0 {
		return 0.0
	}

	res, _ := new(big.Float).SetPrec(a.prec).Quo(num, den).Float64()
	if math.IsInf(res, 0) || math.IsNaN(res) || res < 0 {
		return 0.0
	}
	return res
}

// FloatArith is the machine-precision fallback. Overflow of the numerator
// or denominator, which BigArith would absorb, floors the contribution to 0.
type FloatArith struct{}

// NewFloatArith returns machine-precision arithmetic, warning once that
// precision issues may occur.
func NewFloatArith() FloatArith {
	warnReducedPrecision()
	return FloatArith{}
}

func (FloatArith) Precision() uint { return 53 }

func (FloatArith) TruncatedPoisson(lambda float64, j int) float64 {
	if lambda <= 0 || j < 1 {
		return 0.0
	}
	if math.Exp(lambda) == 1.0 {
		// lambda is below float64 resolution of exp.
		return 0.0
	}

	num := math.Pow(lambda, float64(j))
	den := factorial(j)
	if lambda > config.SmallLambdaThreshold {
		den *= math.Expm1(lambda)
	} else {
		den *= lambda
	}

	res := num / den
	if math.IsInf(res, 0) || math.IsNaN(res) || res < 0 {
		return 0.0
	}
	return res
}

func factorial(j int) float64 {
	f := 1.0
	for i := 2; i <= j; i++ {
		f *= float64(i)
	}
	return f
}

var precisionWarned bool

// warnReducedPrecision reports the precision degradation a single time per
// process, regardless of how many fallback instances are constructed.
func warnReducedPrecision() {
	if precisionWarned {
		return
	}
	precisionWarned = true
	log.Warn("extended-precision arithmetic disabled; precision issues may occur")
}
