package util

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Perm returns a seeded pseudo-random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	return r.rand.Perm(n)
}

// Intn returns a seeded pseudo-random int in [0, n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// NormFloat64 returns a seeded standard-normal sample.
func (r *RNG) NormFloat64() float64 {
	return r.rand.NormFloat64()
}

// GenerateRandomVectors generates random vectors using the given RNG.
func (r *RNG) GenerateRandomVectors(num int, dimensions int) [][]float64 {
	vectors := make([][]float64, num)
	for i := range vectors {
		vectors[i] = make([]float64, dimensions)
		for j := range vectors[i] {
			vectors[i][j] = r.rand.Float64()
		}
	}

	return vectors
}

// OutlierBounds returns the Tukey fence [Q1 - factor*IQR, Q3 + factor*IQR]
// for the sample. Plot consumers use it to trim extreme distances before
// rendering a density.
func OutlierBounds(sample []float64, factor float64) (lower, upper float64) {
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqr := q3 - q1

	return q1 - factor*iqr, q3 + factor*iqr
}
