package split

import (
	"context"
	"iter"
	"sort"

	"github.com/moodsplit/moodsplit/distance"
)

// MaxDissimilarity splits the data such that train and test are maximally
// dissimilar: the test set grows from the single most isolated cluster,
// the train set from the cluster farthest away from it.
type MaxDissimilarity struct {
	clusterer
	trials int
}

// NewMaxDissimilarity creates a maximum-dissimilarity splitter over the
// given cluster count.
func NewMaxDissimilarity(clusters, trials int, seed int64, opts ...Option) *MaxDissimilarity {
	return &MaxDissimilarity{
		clusterer: clusterer{clusters: clusters, seed: seed, cfg: applyOptions(opts)},
		trials:    trials,
	}
}

// TrialCount returns the number of partitions Split yields.
func (s *MaxDissimilarity) TrialCount() int { return s.trials }

// Split reclusters per trial, anchors the test set on the cluster with the
// highest mean distance to all others and the train set on the cluster
// farthest from that anchor, then grows the train set through the
// remaining clusters by ascending distance from the train anchor until the
// target train size is reached. Everything never reached ends up in the
// test set, so unbalanced clusterings can push the test set well past its
// nominal size. y and groups are ignored.
func (s *MaxDissimilarity) Split(ctx context.Context, X [][]float64, y []float64, groups []int) iter.Seq2[Partition, error] {
	return func(yield func(Partition, error) bool) {
		n := len(X)
		nTrain, _, err := resolveSizes(n, s.cfg.testSize, s.cfg.trainSize, defaultGroupTestFraction)
		if err != nil {
			yield(Partition{}, err)
			return
		}

		for t := 0; t < s.trials; t++ {
			_, centers, err := s.assign(ctx, X, t, true)
			if err != nil {
				yield(Partition{}, err)
				return
			}

			unique, groupOf := dedupeCenters(centers)
			if len(unique) < 2 {
				yield(Partition{}, &ErrTooFewGroups{Groups: len(unique), Need: 2})
				return
			}
			members := groupMembers(groupOf, len(unique))

			dm := distance.Matrix(unique, distance.Euclidean, s.cfg.workers)

			testAnchor := argmax(columnMeans(dm))
			trainAnchor := argmax(dm[testAnchor])

			train := append([]int(nil), members[trainAnchor]...)
			test := append([]int(nil), members[testAnchor]...)

			order := argsortAsc(dm[trainAnchor])
			for _, g := range order {
				if len(train) >= nTrain {
					break
				}
				if g == trainAnchor || g == testAnchor {
					continue
				}
				train = append(train, members[g]...)
			}

			// Everything not yet assigned is absorbed by the test set,
			// keeping full coverage.
			assigned := make([]bool, n)
			for _, i := range train {
				assigned[i] = true
			}
			for _, i := range test {
				assigned[i] = true
			}
			for i := 0; i < n; i++ {
				if !assigned[i] {
					test = append(test, i)
				}
			}

			if !yield(Partition{Train: train, Test: test}, nil) {
				return
			}
		}
	}
}

func columnMeans(dm [][]float64) []float64 {
	n := len(dm)
	means := make([]float64, n)
	for j := 0; j < n; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += dm[i][j]
		}
		means[j] = sum / float64(n)
	}
	return means
}

func argmax(vals []float64) int {
	best := 0
	for i, v := range vals {
		if v > vals[best] {
			best = i
		}
	}
	return best
}

// argsortAsc returns the indices that sort vals ascending, stable for
// equal values.
func argsortAsc(vals []float64) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return vals[idx[a]] < vals[idx[b]]
	})
	return idx
}
