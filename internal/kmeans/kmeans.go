package kmeans

import (
	"context"
	"math"
	"math/rand"

	"github.com/moodsplit/moodsplit/distance"
)

const (
	defaultMaxIter   = 100
	defaultBatchSize = 1024
)

// Result holds the outcome of a clustering run.
type Result struct {
	Labels  []int       // per-row cluster id, in [0, K)
	Centers [][]float64 // K centroid rows
	K       int
}

// Train clusters rows into k groups using seeded mini-batch k-means and
// assigns every row its nearest centroid.
//
// When k exceeds the number of rows, k is reduced so that every row can
// seed its own cluster. All randomness flows from seed; identical inputs
// and seed produce identical results.
func Train(ctx context.Context, rows [][]float64, k int, f distance.Func, seed int64) (*Result, error) {
	n := len(rows)
	if n == 0 || k <= 0 {
		return &Result{K: 0}, nil
	}
	if k > n {
		k = n
	}
	dim := len(rows[0])

	rng := rand.New(rand.NewSource(seed))

	// Initialize centroids from distinct data points.
	centers := make([][]float64, k)
	perm := rng.Perm(n)
	for i := 0; i < k; i++ {
		centers[i] = make([]float64, dim)
		copy(centers[i], rows[perm[i]])
	}

	batch := defaultBatchSize
	if batch > n {
		batch = n
	}

	counts := make([]int, k)
	sums := make([]float64, k*dim)
	assigned := make([]int, batch)

	for iter := 0; iter < defaultMaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Sample the mini-batch. A full batch degenerates to Lloyd's
		// algorithm, which keeps small inputs stable.
		var idx []int
		if batch == n {
			idx = perm[:n]
		} else {
			idx = make([]int, batch)
			for i := range idx {
				idx[i] = rng.Intn(n)
			}
		}

		// Assignment step.
		for i, ri := range idx {
			assigned[i] = nearest(rows[ri], centers, f)
		}

		// Update step: move each centroid to the mean of its batch members.
		for i := range sums {
			sums[i] = 0
		}
		for i := range counts {
			counts[i] = 0
		}
		for i, ri := range idx {
			c := assigned[i]
			counts[c]++
			row := rows[ri]
			for d := 0; d < dim; d++ {
				sums[c*dim+d] += row[d]
			}
		}

		changed := false
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Re-initialize empty cluster with a random point.
				copy(centers[c], rows[rng.Intn(n)])
				changed = true
				continue
			}
			scale := 1.0 / float64(counts[c])
			for d := 0; d < dim; d++ {
				v := sums[c*dim+d] * scale
				if centers[c][d] != v {
					centers[c][d] = v
					changed = true
				}
			}
		}

		if !changed {
			break
		}
	}

	labels := make([]int, n)
	for i := range rows {
		labels[i] = nearest(rows[i], centers, f)
	}

	return &Result{Labels: labels, Centers: centers, K: k}, nil
}

// CentersPerRow returns, for each row, the coordinates of its centroid.
func (r *Result) CentersPerRow() [][]float64 {
	out := make([][]float64, len(r.Labels))
	for i, c := range r.Labels {
		out[i] = r.Centers[c]
	}
	return out
}

func nearest(row []float64, centers [][]float64, f distance.Func) int {
	best := -1
	min := math.MaxFloat64
	for c, center := range centers {
		if d := f(row, center); d < min {
			min = d
			best = c
		}
	}
	return best
}
