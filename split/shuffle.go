package split

import (
	"context"
	"errors"
	"iter"
	"slices"
	"sort"

	"github.com/moodsplit/moodsplit/util"
)

// ErrNoGroups indicates a group-based splitter without group labels.
var ErrNoGroups = errors.New("split: no group labels available")

// Random is the uniform shuffle-split baseline.
type Random struct {
	trials int
	seed   int64
	cfg    config
}

// NewRandom creates a random splitter producing trials partitions.
func NewRandom(trials int, seed int64, opts ...Option) *Random {
	return &Random{trials: trials, seed: seed, cfg: applyOptions(opts)}
}

// TrialCount returns the number of partitions Split yields.
func (s *Random) TrialCount() int { return s.trials }

// Split yields seeded uniform shuffle partitions. y and groups are
// ignored.
func (s *Random) Split(ctx context.Context, X [][]float64, y []float64, groups []int) iter.Seq2[Partition, error] {
	return func(yield func(Partition, error) bool) {
		n := len(X)
		nTrain, nTest, err := resolveSizes(n, s.cfg.testSize, s.cfg.trainSize, defaultTestFraction)
		if err != nil {
			yield(Partition{}, err)
			return
		}

		rng := util.NewRNG(s.seed)
		for t := 0; t < s.trials; t++ {
			if err := ctx.Err(); err != nil {
				yield(Partition{}, err)
				return
			}

			perm := rng.Perm(n)
			p := Partition{
				Test:  slices.Clone(perm[:nTest]),
				Train: slices.Clone(perm[nTest : nTest+nTrain]),
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

// PredefinedGroup shuffles whole groups into train/test, keeping every
// group intact. Group labels are fixed at construction so that candidate
// splitters in one registry can disagree on their grouping.
type PredefinedGroup struct {
	groups []int
	trials int
	seed   int64
	cfg    config
}

// NewPredefinedGroup creates a group shuffle splitter over the given group
// labels. If groups is nil, the labels passed to Split are used instead.
func NewPredefinedGroup(groups []int, trials int, seed int64, opts ...Option) *PredefinedGroup {
	return &PredefinedGroup{groups: groups, trials: trials, seed: seed, cfg: applyOptions(opts)}
}

// TrialCount returns the number of partitions Split yields.
func (s *PredefinedGroup) TrialCount() int { return s.trials }

// Split yields group-level shuffle partitions. The predefined labels take
// precedence over the groups argument.
func (s *PredefinedGroup) Split(ctx context.Context, X [][]float64, y []float64, groups []int) iter.Seq2[Partition, error] {
	labels := s.groups
	if labels == nil {
		labels = groups
	}
	if labels == nil {
		return fail(ErrNoGroups)
	}
	return groupShuffle(ctx, labels, s.trials, s.seed, s.cfg)
}

// groupShuffle performs the shared group-level shuffle: sizes are resolved
// over the distinct group labels, groups are permuted, and whole groups
// land on one side of the partition.
func groupShuffle(ctx context.Context, labels []int, trials int, seed int64, cfg config) iter.Seq2[Partition, error] {
	return func(yield func(Partition, error) bool) {
		classes := distinctSorted(labels)
		nTrainG, nTestG, err := resolveSizes(len(classes), cfg.testSize, cfg.trainSize, defaultGroupTestFraction)
		if err != nil {
			yield(Partition{}, err)
			return
		}

		classIdx := make(map[int]int, len(classes))
		for i, c := range classes {
			classIdx[c] = i
		}

		rng := util.NewRNG(seed)
		for t := 0; t < trials; t++ {
			if err := ctx.Err(); err != nil {
				yield(Partition{}, err)
				return
			}

			perm := rng.Perm(len(classes))
			side := make([]int8, len(classes)) // 0 unused, 1 test, 2 train
			for _, g := range perm[:nTestG] {
				side[g] = 1
			}
			for _, g := range perm[nTestG : nTestG+nTrainG] {
				side[g] = 2
			}

			var p Partition
			for i, label := range labels {
				switch side[classIdx[label]] {
				case 1:
					p.Test = append(p.Test, i)
				case 2:
					p.Train = append(p.Train, i)
				}
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

func distinctSorted(labels []int) []int {
	seen := make(map[int]struct{}, len(labels))
	var out []int
	for _, l := range labels {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	sort.Ints(out)
	return out
}
