package split

import (
	"context"
	"iter"
	"slices"
	"sort"

	"github.com/moodsplit/moodsplit/distance"
	"github.com/moodsplit/moodsplit/internal/kernelmap"
	"github.com/moodsplit/moodsplit/internal/kmeans"
)

// clusterer groups a feature matrix with seeded mini-batch k-means,
// embedding through an empirical kernel map first when the metric is not
// Euclidean. Shared by the cluster-based splitters.
type clusterer struct {
	clusters int
	seed     int64
	cfg      config
}

// assign clusters X and returns per-row group ids and, when wantCenters is
// set, per-row centroid coordinates. trial offsets the seed so repeated
// trials draw different but reproducible clusterings.
func (c *clusterer) assign(ctx context.Context, X [][]float64, trial int, wantCenters bool) ([]int, [][]float64, error) {
	m := c.cfg.metric
	if c.cfg.autoMetric {
		m = distance.Detect(X)
	}

	seed := c.seed + int64(trial)

	rows := X
	if !m.IsEuclidean(c.cfg.p) {
		f, err := distance.Provider(m, c.cfg.p)
		if err != nil {
			return nil, nil, err
		}
		rows = kernelmap.New(X, f, c.cfg.maxLandmarks, seed).Transform(X)
	}

	res, err := kmeans.Train(ctx, rows, c.clusters, distance.Euclidean, seed)
	if err != nil {
		return nil, nil, err
	}

	if !wantCenters {
		return res.Labels, nil, nil
	}
	return res.Labels, res.CentersPerRow(), nil
}

// dedupeCenters collapses clusters whose centers are numerically identical
// into one logical group. Unique centers are ordered lexicographically and
// the returned per-row group ids index into that ordering, so group id is
// a canonical distance-matrix index.
func dedupeCenters(centers [][]float64) (unique [][]float64, groupOf []int) {
	for _, c := range centers {
		found := false
		for _, u := range unique {
			if slices.Equal(c, u) {
				found = true
				break
			}
		}
		if !found {
			unique = append(unique, c)
		}
	}

	sort.Slice(unique, func(i, j int) bool {
		return slices.Compare(unique[i], unique[j]) < 0
	})

	groupOf = make([]int, len(centers))
	for i, c := range centers {
		for g, u := range unique {
			if slices.Equal(c, u) {
				groupOf[i] = g
				break
			}
		}
	}

	return unique, groupOf
}

// groupMembers returns, per group id, the ascending row indices belonging
// to it.
func groupMembers(groupOf []int, m int) [][]int {
	members := make([][]int, m)
	for i, g := range groupOf {
		members[g] = append(members[g], i)
	}
	return members
}

// KMeans shuffles whole k-means clusters into train/test: the matrix is
// clustered once and the resulting labels feed a group shuffle.
type KMeans struct {
	clusterer
	trials int
}

// NewKMeans creates a cluster-group shuffle splitter.
func NewKMeans(clusters, trials int, seed int64, opts ...Option) *KMeans {
	return &KMeans{
		clusterer: clusterer{clusters: clusters, seed: seed, cfg: applyOptions(opts)},
		trials:    trials,
	}
}

// TrialCount returns the number of partitions Split yields.
func (s *KMeans) TrialCount() int { return s.trials }

// Split yields group shuffle partitions over k-means cluster labels.
// y and groups are ignored; the clustering defines the grouping.
func (s *KMeans) Split(ctx context.Context, X [][]float64, y []float64, groups []int) iter.Seq2[Partition, error] {
	return func(yield func(Partition, error) bool) {
		labels, _, err := s.assign(ctx, X, 0, false)
		if err != nil {
			yield(Partition{}, err)
			return
		}

		for p, err := range groupShuffle(ctx, labels, s.trials, s.seed, s.cfg) {
			if !yield(p, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}
