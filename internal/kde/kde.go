// Package kde implements one-dimensional gaussian kernel density
// estimation with automatic (Scott's rule) bandwidth selection.
package kde

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrDegenerateSample indicates a sample with fewer than two distinct
// values, for which a density estimate is undefined.
var ErrDegenerateSample = errors.New("kde: sample needs at least two distinct values")

// Estimator is a gaussian kernel density estimate over a fixed sample.
type Estimator struct {
	sample    []float64
	bandwidth float64
}

// New fits an estimator to sample using Scott's rule for the bandwidth:
// sigma * n^(-1/5).
func New(sample []float64) (*Estimator, error) {
	if distinct(sample) < 2 {
		return nil, ErrDegenerateSample
	}

	sigma := stat.StdDev(sample, nil)
	bw := sigma * math.Pow(float64(len(sample)), -0.2)

	return &Estimator{sample: sample, bandwidth: bw}, nil
}

// Bandwidth returns the selected kernel bandwidth.
func (e *Estimator) Bandwidth() float64 {
	return e.bandwidth
}

// Evaluate returns the estimated density at each of the given positions.
func (e *Estimator) Evaluate(positions []float64) []float64 {
	n := float64(len(e.sample))
	out := make([]float64, len(positions))
	for i, x := range positions {
		var sum float64
		for _, xi := range e.sample {
			sum += distuv.UnitNormal.Prob((x - xi) / e.bandwidth)
		}
		out[i] = sum / (n * e.bandwidth)
	}
	return out
}

func distinct(sample []float64) int {
	seen := make(map[float64]struct{}, len(sample))
	for _, v := range sample {
		seen[v] = struct{}{}
	}
	return len(seen)
}
