// Package knn provides exact k-nearest-neighbor distance computation
// between a query set and a reference set of feature vectors.
//
// The mean distance from a point to its k nearest reference points acts
// as a proxy for how hard that point is for a model trained on the
// reference set.
package knn

import (
	"fmt"
	"sort"

	"github.com/moodsplit/moodsplit/distance"
)

// ErrInsufficientData indicates fewer reference rows than requested
// neighbors.
type ErrInsufficientData struct {
	Have int
	Need int
}

func (e *ErrInsufficientData) Error() string {
	return fmt.Sprintf("insufficient reference data: have %d rows, need at least %d", e.Have, e.Need)
}

// MeanDistance returns, for every query row, the arithmetic mean of the
// distances to its k nearest rows in reference.
//
// A query row coincident with a reference row contributes a zero distance
// to the mean normally.
func MeanDistance(query, reference [][]float64, k int, f distance.Func) ([]float64, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if len(reference) < k {
		return nil, &ErrInsufficientData{Have: len(reference), Need: k}
	}

	out := make([]float64, len(query))
	scratch := make([]float64, len(reference))

	for qi, q := range query {
		for ri, r := range reference {
			scratch[ri] = f(q, r)
		}
		sort.Float64s(scratch)

		var sum float64
		for i := 0; i < k; i++ {
			sum += scratch[i]
		}
		out[qi] = sum / float64(k)
	}

	return out, nil
}
