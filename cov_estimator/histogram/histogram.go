package histogram

import "math"

// Histogram holds the k-mer multiplicity histogram as a dense sequence:
// Counts[j] is the number of distinct k-mers observed exactly j times.
// Index 0 carries no information and is unused by the model.
//
// The aggregate statistics are collected at load time, before any trimming,
// and stay fixed afterwards.
type Histogram struct {
	Counts []int64

	// AllKmers is the total number of k-mer occurrences over levels >= 2.
	AllKmers float64
	// UniqueKmers is the number of distinct k-mers observed at least twice.
	UniqueKmers int64
	// ObservedOnes is the number of distinct k-mers observed exactly once.
	ObservedOnes int64
}

// Size returns the length of the dense count sequence.
func (h *Histogram) Size() int {
	return len(h.Counts)
}

// Trim cuts the histogram to the first cut levels. A cut at or beyond the
// current size leaves the histogram unchanged.
func (h *Histogram) Trim(cut int) {
	if cut >= 0 && cut < len(h.Counts) {
		h.Counts = h.Counts[:cut]
	}
}

// AutoTrim finds the first level where the cumulative share of counts,
// rounded to the given decimal precision, reaches 1.0, trims there, and
// returns the trim position. A precision below 1 disables the rounding and
// compares the share exactly, so only a zero tail is removed. It returns -1
// (and trims nothing) when the share never saturates, which for a positive
// precision can only happen with an empty histogram.
//
// Only a tail whose cumulative share has already saturated is removed, so
// the trimmed histogram carries the same rounded mass as the original.
func (h *Histogram) AutoTrim(precision int) int {
	total := 0.0
	for _, cnt := range h.Counts {
		total += float64(cnt)
	}
	if total == 0 {
		return -1
	}

	scale := math.Pow(10, float64(precision))
	sum := 0.0
	trim := -1
	for i, cnt := range h.Counts {
		sum += float64(cnt)
		share := sum / total
		if precision >= 1 {
			share = math.Round(share*scale) / scale
		}
		if share == 1.0 && trim < 0 {
			trim = i
		}
	}
	if trim >= 0 {
		h.Trim(trim)
	}
	return trim
}
