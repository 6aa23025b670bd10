// Package kernelmap provides an empirical kernel map: rows measured under
// an arbitrary metric are embedded into a Euclidean feature space by their
// distance profile to a fixed set of landmark rows. Centroid-based
// clustering then operates on the embedded coordinates.
package kernelmap

import (
	"math/rand"

	"github.com/moodsplit/moodsplit/distance"
)

// DefaultMaxLandmarks bounds the embedding dimensionality.
const DefaultMaxLandmarks = 512

// Transformer embeds rows by their distances to a fixed landmark set.
type Transformer struct {
	landmarks [][]float64
	f         distance.Func
}

// New samples up to maxLandmarks rows of X (without replacement, seeded)
// as landmarks. maxLandmarks <= 0 uses DefaultMaxLandmarks.
func New(X [][]float64, f distance.Func, maxLandmarks int, seed int64) *Transformer {
	if maxLandmarks <= 0 {
		maxLandmarks = DefaultMaxLandmarks
	}
	n := len(X)
	m := maxLandmarks
	if m > n {
		m = n
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	landmarks := make([][]float64, m)
	for i := 0; i < m; i++ {
		landmarks[i] = X[perm[i]]
	}

	return &Transformer{landmarks: landmarks, f: f}
}

// Dim returns the dimensionality of the embedded space.
func (t *Transformer) Dim() int {
	return len(t.landmarks)
}

// Transform maps each row to its landmark distance profile.
func (t *Transformer) Transform(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		emb := make([]float64, len(t.landmarks))
		for j, l := range t.landmarks {
			emb[j] = t.f(row, l)
		}
		out[i] = emb
	}
	return out
}
