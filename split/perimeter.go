package split

import (
	"context"
	"iter"
	"sort"

	"github.com/moodsplit/moodsplit/distance"
)

// Perimeter places the pairs of clusters with maximal pairwise distance in
// the test set, probing extrapolation across several separated regions.
// Also known as the extrapolation-oriented split (Szántai-Kis et al.,
// 2003).
type Perimeter struct {
	clusterer
	trials int
}

// NewPerimeter creates a perimeter splitter over the given cluster count.
func NewPerimeter(clusters, trials int, seed int64, opts ...Option) *Perimeter {
	return &Perimeter{
		clusterer: clusterer{clusters: clusters, seed: seed, cfg: applyOptions(opts)},
		trials:    trials,
	}
}

// TrialCount returns the number of partitions Split yields.
func (s *Perimeter) TrialCount() int { return s.trials }

// Split reclusters per trial and greedily pulls the most mutually distant
// unassigned cluster pairs into the test set until the target test size is
// reached. Whole clusters move at once, so the achieved test size may
// overshoot the target by up to one cluster; if pairs run out first, the
// smaller achieved test set is kept. Remaining clusters form the train
// set. y and groups are ignored.
func (s *Perimeter) Split(ctx context.Context, X [][]float64, y []float64, groups []int) iter.Seq2[Partition, error] {
	return func(yield func(Partition, error) bool) {
		n := len(X)
		_, nTest, err := resolveSizes(n, s.cfg.testSize, s.cfg.trainSize, defaultGroupTestFraction)
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
			members := groupMembers(groupOf, len(unique))

			// Cluster centers live in (embedded) Euclidean space, so the
			// group distance matrix is always Euclidean.
			dm := distance.Matrix(unique, distance.Euclidean, s.cfg.workers)

			pairs := trianglePairs(len(unique))
			sort.SliceStable(pairs, func(a, b int) bool {
				return dm[pairs[a][0]][pairs[a][1]] > dm[pairs[b][0]][pairs[b][1]]
			})

			remaining := make([]bool, len(unique))
			for g := range remaining {
				remaining[g] = true
			}

			var test []int
			for _, pr := range pairs {
				if len(test) >= nTest {
					break
				}
				gi, gj := pr[0], pr[1]
				if !remaining[gi] || !remaining[gj] {
					continue
				}
				remaining[gi] = false
				test = append(test, members[gi]...)
				remaining[gj] = false
				test = append(test, members[gj]...)
			}

			var train []int
			for g, left := range remaining {
				if left {
					train = append(train, members[g]...)
				}
			}

			if !yield(Partition{Train: train, Test: test}, nil) {
				return
			}
		}
	}
}

// trianglePairs enumerates the unordered group pairs (i, j) with i > j in
// row-major lower-triangle order. The stable pair sort keeps this order
// for equal distances.
func trianglePairs(m int) [][2]int {
	pairs := make([][2]int, 0, m*(m-1)/2)
	for i := 1; i < m; i++ {
		for j := 0; j < i; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}
