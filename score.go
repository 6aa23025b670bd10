package moodsplit

import (
	"errors"
	"math"

	"github.com/moodsplit/moodsplit/internal/kde"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Score computes the representativeness of a candidate distance sample
// with respect to a reference (downstream) sample. A higher score should
// be interpreted as more representative.
//
// A gaussian density estimate is fitted to each sample and both are
// evaluated on a shared grid of resolution points spanning the combined
// range; the score is 1 minus the base-2 Jensen-Shannon distance between
// the normalized density vectors. 1.0 means identical distributions, 0.0
// maximally divergent. This is a similarity, not a probability.
//
// resolution <= 0 uses DefaultResolution. Both samples must be finite and
// contain at least two distinct values.
func Score(reference, candidate []float64, resolution int) (float64, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	if !allFinite(reference) || !allFinite(candidate) {
		return 0, ErrInvalidInput
	}

	refPDF, err := newEstimate(reference)
	if err != nil {
		return 0, err
	}
	candPDF, err := newEstimate(candidate)
	if err != nil {
		return 0, err
	}

	lo := math.Min(floats.Min(reference), floats.Min(candidate))
	hi := math.Max(floats.Max(reference), floats.Max(candidate))

	grid := make([]float64, resolution)
	floats.Span(grid, lo, hi)

	p := normalize(refPDF.Evaluate(grid))
	q := normalize(candPDF.Evaluate(grid))

	// stat.JensenShannon uses the natural logarithm; rescale to base 2 so
	// the divergence saturates at 1, and take the square-root (metric)
	// form.
	div := stat.JensenShannon(p, q) / math.Ln2
	if div < 0 {
		div = 0
	}
	if div > 1 {
		div = 1
	}

	return 1 - math.Sqrt(div), nil
}

func newEstimate(sample []float64) (*kde.Estimator, error) {
	e, err := kde.New(sample)
	if errors.Is(err, kde.ErrDegenerateSample) {
		return nil, &ErrInsufficientSample{Distinct: distinctCount(sample)}
	}
	return e, err
}

func normalize(density []float64) []float64 {
	if sum := floats.Sum(density); sum > 0 {
		floats.Scale(1/sum, density)
	}
	return density
}

func allFinite(sample []float64) bool {
	for _, v := range sample {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// filterFinite drops NaN and infinite values from a distance sample. The
// filtering is policy, not error recovery: distances of degenerate pairs
// can legitimately be non-finite and must not reach the scorer.
func filterFinite(sample []float64) []float64 {
	out := make([]float64, 0, len(sample))
	for _, v := range sample {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

func distinctCount(sample []float64) int {
	seen := make(map[float64]struct{}, len(sample))
	for _, v := range sample {
		seen[v] = struct{}{}
	}
	return len(seen)
}
