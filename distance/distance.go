package distance

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricMinkowski
	MetricManhattan
	MetricCosine
	MetricJaccard
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricMinkowski:
		return "Minkowski"
	case MetricManhattan:
		return "Manhattan"
	case MetricCosine:
		return "Cosine"
	case MetricJaccard:
		return "Jaccard"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// IsEuclidean reports whether distances under m coincide with the L2
// metric, so that centroid-based clustering is valid without an embedding
// step. p is only consulted for MetricMinkowski.
func (m Metric) IsEuclidean(p float64) bool {
	return m == MetricEuclidean || (m == MetricMinkowski && p == 2)
}

// Func is a function type for distance calculation.
// Vectors are assumed to be the same length (caller's responsibility).
type Func func(a, b []float64) float64

// Euclidean calculates the L2 distance between two vectors.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Minkowski returns the Minkowski distance function with exponent p.
// p=2 is the Euclidean distance, p=1 the Manhattan distance.
func Minkowski(p float64) Func {
	return func(a, b []float64) float64 {
		return floats.Distance(a, b, p)
	}
}

// Manhattan calculates the L1 distance between two vectors.
func Manhattan(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// Cosine calculates the cosine distance (1 - cosine similarity).
// Zero vectors yield a distance of 1.
func Cosine(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - floats.Dot(a, b)/(na*nb)
}

// Jaccard calculates the Jaccard distance between two binary vectors.
// Non-zero entries are treated as set membership. Two empty sets have
// distance 0.
func Jaccard(a, b []float64) float64 {
	var inter, union int
	for i := range a {
		x, y := a[i] != 0, b[i] != 0
		if x && y {
			inter++
		}
		if x || y {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return 1 - float64(inter)/float64(union)
}

// Provider returns the distance function for the given metric.
// p is only consulted for MetricMinkowski.
func Provider(m Metric, p float64) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricMinkowski:
		if p <= 0 {
			return nil, fmt.Errorf("minkowski exponent must be positive, got %v", p)
		}
		return Minkowski(p), nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricCosine:
		return Cosine, nil
	case MetricJaccard:
		return Jaccard, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}

// Detect returns the metric conventionally used for X: Jaccard when every
// feature value is 0 or 1 (binary fingerprints), Euclidean otherwise.
func Detect(X [][]float64) Metric {
	for _, row := range X {
		for _, v := range row {
			if v != 0 && v != 1 {
				return MetricEuclidean
			}
		}
	}
	return MetricJaccard
}

// Matrix computes the full symmetric pairwise distance matrix over points.
// Rows are computed in parallel; workers bounds the number of concurrent
// row computations, workers <= 0 uses GOMAXPROCS.
func Matrix(points [][]float64, f Func, workers int) [][]float64 {
	n := len(points)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			for j := 0; j < i; j++ {
				d := f(points[i], points[j])
				m[i][j] = d
				m[j][i] = d
			}
			return nil
		})
	}

	// Workers never fail; Wait only synchronizes.
	_ = g.Wait()

	return m
}
