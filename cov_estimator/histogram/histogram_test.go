package histogram

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeHist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hist.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	// Unsorted levels with gaps; the top level is the dense bound and is
	// itself excluded from the count sequence.
	h, err := Load(writeHist(t, "3 10\n1 5\n5 2\n"))
	if err != nil {
		t.Fatal(err)
	}

	want := []int64{0, 5, 0, 10, 0}
	if len(h.Counts) != len(want) {
		t.Fatalf("got %d levels, want %d", len(h.Counts), len(want))
	}
	for j, cnt := range want {
		if h.Counts[j] != cnt {
			t.Errorf("Counts[%d] = %d, want %d", j, h.Counts[j], cnt)
		}
	}
	if h.ObservedOnes != 5 {
		t.Errorf("ObservedOnes = %d, want 5", h.ObservedOnes)
	}
	if h.UniqueKmers != 12 {
		t.Errorf("UniqueKmers = %d, want 12", h.UniqueKmers)
	}
	if h.AllKmers != 40 {
		t.Errorf("AllKmers = %g, want 40", h.AllKmers)
	}
}

func TestLoadMalformed(t *testing.T) {
	cases := []string{
		"1\n",
		"one 5\n",
		"1 five\n",
	}
	for _, content := range cases {
		if _, err := Load(writeHist(t, content)); err == nil {
			t.Errorf("Load(%q): expected error", content)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTrim(t *testing.T) {
	h := &Histogram{Counts: []int64{0, 5, 4, 3, 2, 1}}
	h.Trim(3)
	if len(h.Counts) != 3 {
		t.Fatalf("got %d levels after trim, want 3", len(h.Counts))
	}
	// Trimming past the end is a no-op.
	h.Trim(10)
	if len(h.Counts) != 3 {
		t.Fatalf("got %d levels after oversized trim, want 3", len(h.Counts))
	}
}

func TestAutoTrim(t *testing.T) {
	h := &Histogram{Counts: []int64{0, 90, 9, 1, 0, 0, 0}}
	pos := h.AutoTrim(2)
	if pos != 3 {
		t.Fatalf("trim position = %d, want 3", pos)
	}
	if len(h.Counts) != 3 {
		t.Fatalf("got %d levels after autotrim, want 3", len(h.Counts))
	}
}

func TestAutoTrimRounding(t *testing.T) {
	// At precision 2 the cumulative share saturates one level earlier
	// than the raw mass does.
	h := &Histogram{Counts: []int64{0, 999, 1}}
	if pos := h.AutoTrim(2); pos != 1 {
		t.Fatalf("trim position = %d, want 1", pos)
	}
}

func TestAutoTrimExactPrecision(t *testing.T) {
	// Precision 0 disables the rounding: a level holding half the mass must
	// not count as saturated, and only the true zero tail comes off.
	h := &Histogram{Counts: []int64{0, 50, 50, 0}}
	if pos := h.AutoTrim(0); pos != 2 {
		t.Fatalf("trim position = %d, want 2", pos)
	}
	if len(h.Counts) != 2 {
		t.Fatalf("got %d levels after autotrim, want 2", len(h.Counts))
	}

	h = &Histogram{Counts: []int64{0, 999, 1}}
	if pos := h.AutoTrim(0); pos != 2 {
		t.Fatalf("trim position = %d, want 2", pos)
	}
}

func TestAutoTrimEmpty(t *testing.T) {
	h := &Histogram{Counts: nil}
	if pos := h.AutoTrim(2); pos != -1 {
		t.Fatalf("trim position = %d, want -1", pos)
	}
}

// poissonPMF is the reference Poisson mass used to synthesize histograms.
func poissonPMF(lambda float64, j int) float64 {
	logp := float64(j)*math.Log(lambda) - lambda
	for i := 2; i <= j; i++ {
		logp -= math.Log(float64(i))
	}
	return math.Exp(logp)
}

func TestGuessPoissonHistogram(t *testing.T) {
	// A noiseless histogram of a million error-free k-mers at k-mer
	// coverage 10. The guess must undo the visibility correction exactly
	// and convert to read coverage.
	const (
		lambda = 10.0
		n      = 1e6
		k      = 20
		r      = 100
	)
	h := &Histogram{Counts: make([]int64, 30)}
	for j := 1; j < 30; j++ {
		h.Counts[j] = int64(n * poissonPMF(lambda, j))
	}
	h.ObservedOnes = h.Counts[1]
	for j := 2; j < 30; j++ {
		h.UniqueKmers += h.Counts[j]
		h.AllKmers += float64(j) * float64(h.Counts[j])
	}

	cov, errRate := h.Guess(k, r)
	wantCov := lambda * r / float64(r-k+1)
	if math.Abs(cov-wantCov) > 0.01*wantCov {
		t.Errorf("coverage = %g, want about %g", cov, wantCov)
	}
	if errRate < 0 || errRate > 0.01 {
		t.Errorf("error rate = %g, want about 0", errRate)
	}
}

func TestGuessDegenerate(t *testing.T) {
	h := &Histogram{Counts: []int64{0, 5}, ObservedOnes: 5}
	cov, errRate := h.Guess(20, 100)
	if cov != 0 || errRate != 1 {
		t.Fatalf("degenerate guess = (%g, %g), want (0, 1)", cov, errRate)
	}
}

func TestInvert(t *testing.T) {
	square := func(x float64) float64 { return x * x }
	inv := Invert(square, 1e-9)
	for _, y := range []float64{0.25, 1, 9, 1e6} {
		x := inv(y)
		if math.Abs(x-math.Sqrt(y)) > 1e-6*math.Sqrt(y) {
			t.Errorf("inverse of x^2 at %g = %g, want %g", y, x, math.Sqrt(y))
		}
	}
	// Targets at or below the domain edge clamp to the edge.
	if x := inv(0); x != 1e-9 {
		t.Errorf("inverse at 0 = %g, want the domain edge", x)
	}
}
