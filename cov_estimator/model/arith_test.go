package model

import (
	"math"
	"testing"
)

func TestTruncatedPoissonAgreement(t *testing.T) {
	big := NewBigArith(0)
	flt := FloatArith{}

	cases := []struct {
		lambda float64
		j      int
	}{
		{0.5, 1},
		{5, 3},
		{10, 10},
		{30, 45},
		{80, 120},
	}
	for _, c := range cases {
		b := big.TruncatedPoisson(c.lambda, c.j)
		f := flt.TruncatedPoisson(c.lambda, c.j)
		if b <= 0 || f <= 0 {
			t.Fatalf("TruncatedPoisson(%g, %d): non-positive (%g, %g)", c.lambda, c.j, b, f)
		}
		if rel := math.Abs(b-f) / b; rel > 1e-9 {
			t.Errorf("TruncatedPoisson(%g, %d): big %g vs float %g (rel %g)", c.lambda, c.j, b, f, rel)
		}
	}
}

func TestTruncatedPoissonReference(t *testing.T) {
	// lambda^j / (j! (e^lambda - 1)) at (5, 3): 125 / (6 (e^5 - 1)).
	want := 125.0 / (6.0 * (math.Exp(5) - 1))
	got := NewBigArith(0).TruncatedPoisson(5, 3)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("got %g, want %g", got, want)
	}
}

func TestTruncatedPoissonExtendedRange(t *testing.T) {
	// At (800, 400) both lambda^j and j! overflow float64 while the
	// ratio is a representable probability. The extended-precision path
	// recovers it; the machine-precision path floors the term to 0.
	big := NewBigArith(0).TruncatedPoisson(800, 400)
	if big <= 0 || big >= 1 {
		t.Errorf("BigArith = %g, want a small positive probability", big)
	}
	if flt := (FloatArith{}).TruncatedPoisson(800, 400); flt != 0 {
		t.Errorf("FloatArith = %g, want the overflow floor 0", flt)
	}
}

func TestTruncatedPoissonSmallLambda(t *testing.T) {
	// Below the cancellation threshold the denominator decays to lambda,
	// so P(1) -> 1 and P(2) -> lambda/2.
	const lambda = 1e-9
	for _, a := range []Arithmetic{NewBigArith(0), FloatArith{}} {
		if p := a.TruncatedPoisson(lambda, 1); math.Abs(p-1) > 1e-6 {
			t.Errorf("%T: P(1) = %g, want about 1", a, p)
		}
		if p := a.TruncatedPoisson(lambda, 2); math.Abs(p-lambda/2) > 1e-15 {
			t.Errorf("%T: P(2) = %g, want about %g", a, p, lambda/2)
		}
	}
}

func TestTruncatedPoissonDomainEdges(t *testing.T) {
	for _, a := range []Arithmetic{NewBigArith(0), FloatArith{}} {
		if p := a.TruncatedPoisson(0, 1); p != 0 {
			t.Errorf("%T: P at lambda=0 is %g, want 0", a, p)
		}
		if p := a.TruncatedPoisson(-1, 1); p != 0 {
			t.Errorf("%T: P at lambda<0 is %g, want 0", a, p)
		}
		if p := a.TruncatedPoisson(5, 0); p != 0 {
			t.Errorf("%T: P at j=0 is %g, want 0", a, p)
		}
	}
}
