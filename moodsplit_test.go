package moodsplit

import (
	"context"
	"errors"
	"iter"
	"sort"
	"testing"

	"github.com/moodsplit/moodsplit/split"
	"github.com/moodsplit/moodsplit/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSplitter yields a fixed sequence of partitions.
type stubSplitter struct {
	parts []split.Partition
	err   error
}

func (s stubSplitter) TrialCount() int { return len(s.parts) }

func (s stubSplitter) Split(ctx context.Context, X [][]float64, y []float64, groups []int) iter.Seq2[split.Partition, error] {
	return func(yield func(split.Partition, error) bool) {
		if s.err != nil {
			yield(split.Partition{}, s.err)
			return
		}
		for _, p := range s.parts {
			if !yield(p, nil) {
				return
			}
		}
	}
}

func TestNew_Validation(t *testing.T) {
	t.Run("NoCandidates", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrNoCandidates)
	})

	t.Run("NilCandidate", func(t *testing.T) {
		_, err := New(map[string]split.Splitter{"A": nil})
		var nc *ErrNilCandidate
		require.ErrorAs(t, err, &nc)
		assert.Equal(t, "A", nc.Name)
	})

	t.Run("InconsistentTrials", func(t *testing.T) {
		_, err := New(map[string]split.Splitter{
			"A": split.NewRandom(5, 0),
			"B": split.NewRandom(3, 0),
		})
		var it *ErrInconsistentTrials
		require.ErrorAs(t, err, &it)
		assert.Equal(t, map[string]int{"A": 5, "B": 3}, it.Counts)
	})
}

func TestPrescriber_NotFitted(t *testing.T) {
	p, err := New(map[string]split.Splitter{"Random": split.NewRandom(1, 0)})
	require.NoError(t, err)
	assert.False(t, p.Fitted())

	_, err = p.PrescribedLabel()
	assert.ErrorIs(t, err, ErrNotFitted)

	_, err = p.Prescribed()
	assert.ErrorIs(t, err, ErrNotFitted)

	_, err = p.Ranking()
	assert.ErrorIs(t, err, ErrNotFitted)

	_, err = p.Characterizations()
	assert.ErrorIs(t, err, ErrNotFitted)

	_, err = p.DownstreamDistances()
	assert.ErrorIs(t, err, ErrNotFitted)

	for _, err := range p.Split(context.Background(), nil, nil, nil) {
		assert.ErrorIs(t, err, ErrNotFitted)
	}
}

func TestPrescriber_NoDownstream(t *testing.T) {
	p, err := New(map[string]split.Splitter{"Random": split.NewRandom(1, 0)})
	require.NoError(t, err)

	err = p.Fit(context.Background(), [][]float64{{0}}, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoDownstream)
	assert.False(t, p.Fitted())
}

// TestPrescriber_SelectsRepresentativeCandidate builds two candidates in
// 1D whose train-to-test distances are fully controlled: candidate A's
// test points sit where the downstream sample sits, candidate B's an
// order of magnitude away. A must win with a score near 1.
func TestPrescriber_SelectsRepresentativeCandidate(t *testing.T) {
	// Rows 0-4: train points at 0.00..0.04 (mean 0.02).
	// Rows 5-9: candidate A test points at 1.00..1.04.
	// Rows 10-14: candidate B test points at 10.00..10.04.
	X := [][]float64{
		{0.00}, {0.01}, {0.02}, {0.03}, {0.04},
		{1.00}, {1.01}, {1.02}, {1.03}, {1.04},
		{10.00}, {10.01}, {10.02}, {10.03}, {10.04},
	}
	train := []int{0, 1, 2, 3, 4}

	// With k=5 every test point's mean train distance is its coordinate
	// minus 0.02, so A's distances are exactly the downstream sample.
	downstream := []float64{0.98, 0.99, 1.00, 1.01, 1.02}

	p, err := New(map[string]split.Splitter{
		"A": stubSplitter{parts: []split.Partition{{Train: train, Test: []int{5, 6, 7, 8, 9}}}},
		"B": stubSplitter{parts: []split.Partition{{Train: train, Test: []int{10, 11, 12, 13, 14}}}},
	}, WithDownstreamDistances(downstream))
	require.NoError(t, err)

	require.NoError(t, p.Fit(context.Background(), X, nil, nil, nil))
	require.True(t, p.Fitted())

	label, err := p.PrescribedLabel()
	require.NoError(t, err)
	assert.Equal(t, "A", label)

	rows, err := p.Ranking()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byLabel := map[string]RankedSplit{}
	for _, r := range rows {
		byLabel[r.Label] = r
	}
	assert.InDelta(t, 1.0, byLabel["A"].Representativeness, 1e-9)
	assert.Less(t, byLabel["B"].Representativeness, 0.2)
	assert.True(t, byLabel["A"].Best)
	assert.Equal(t, 1, byLabel["A"].Rank)
	assert.Equal(t, 2, byLabel["B"].Rank)

	// Split delegates to the winning candidate.
	var got []split.Partition
	for part, err := range p.Split(context.Background(), X, nil, nil) {
		require.NoError(t, err)
		got = append(got, part)
	}
	require.Len(t, got, 1)
	assert.Equal(t, []int{5, 6, 7, 8, 9}, got[0].Test)
}

func TestPrescriber_FailingCandidateAborts(t *testing.T) {
	boom := errors.New("clustering exploded")

	p, err := New(map[string]split.Splitter{
		"Good": stubSplitter{parts: []split.Partition{{Train: []int{0, 1, 2, 3, 4}, Test: []int{5, 6}}}},
		"Bad":  stubSplitter{err: boom, parts: []split.Partition{{}}},
	}, WithDownstreamDistances([]float64{1, 2, 3}))
	require.NoError(t, err)

	X := [][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}}
	err = p.Fit(context.Background(), X, nil, nil, nil)
	assert.ErrorIs(t, err, boom)
	assert.False(t, p.Fitted())

	_, err = p.PrescribedLabel()
	assert.ErrorIs(t, err, ErrNotFitted)
}

// TestPrescriber_EndToEnd exercises the full pipeline with the real
// splitters over three separated blobs.
func TestPrescriber_EndToEnd(t *testing.T) {
	rng := util.NewRNG(17)
	var X [][]float64
	for _, c := range [][2]float64{{0, 0}, {10, 0}, {0, 10}} {
		for i := 0; i < 10; i++ {
			X = append(X, []float64{
				c[0] + 0.2*rng.NormFloat64(),
				c[1] + 0.2*rng.NormFloat64(),
			})
		}
	}
	groups := make([]int, len(X))
	for i := range groups {
		groups[i] = i / 10
	}

	// Deployment points scattered near the data.
	XDep := make([][]float64, 12)
	for i := range XDep {
		XDep[i] = []float64{
			5 * rng.NormFloat64(),
			5 * rng.NormFloat64(),
		}
	}

	candidates := map[string]split.Splitter{
		"Random":                split.NewRandom(2, 7),
		"Group":                 split.NewPredefinedGroup(groups, 2, 7),
		"Perimeter":             split.NewPerimeter(3, 2, 7),
		"Maximum Dissimilarity": split.NewMaxDissimilarity(3, 2, 7),
	}

	p, err := New(candidates, WithNeighbors(3))
	require.NoError(t, err)

	require.NoError(t, p.Fit(context.Background(), X, nil, groups, XDep))
	require.True(t, p.Fitted())

	label, err := p.PrescribedLabel()
	require.NoError(t, err)
	assert.Contains(t, candidates, label)

	// The prescribed label carries the maximal representativeness.
	rows, err := p.Ranking()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	var maxScore float64
	for _, r := range rows {
		if r.Representativeness > maxScore {
			maxScore = r.Representativeness
		}
	}
	for _, r := range rows {
		if r.Label == label {
			assert.Equal(t, maxScore, r.Representativeness)
			assert.Equal(t, 1, r.Rank)
		}
	}

	downstream, err := p.DownstreamDistances()
	require.NoError(t, err)
	assert.NotEmpty(t, downstream)

	// The winning splitter still produces full-coverage partitions.
	for part, err := range p.Split(context.Background(), X, nil, groups) {
		require.NoError(t, err)

		all := append(append([]int(nil), part.Train...), part.Test...)
		require.Len(t, all, len(X))
		sort.Ints(all)
		for i, v := range all {
			require.Equal(t, i, v)
		}
	}

	// Refit is allowed and deterministic for identical inputs.
	prev := label
	require.NoError(t, p.Fit(context.Background(), X, nil, groups, XDep))
	label, err = p.PrescribedLabel()
	require.NoError(t, err)
	assert.Equal(t, prev, label)
}

type captureVisualizer struct {
	downstream []float64
	distances  [][]float64
	labels     []string
}

func (v *captureVisualizer) PlotDistanceDistributions(downstream []float64, distances [][]float64, labels []string) error {
	v.downstream = downstream
	v.distances = distances
	v.labels = labels
	return nil
}

func TestPrescriber_Visualize(t *testing.T) {
	X := [][]float64{
		{0.00}, {0.01}, {0.02}, {0.03}, {0.04},
		{1.00}, {1.01}, {1.02}, {1.03}, {1.04},
		{10.00}, {10.01}, {10.02}, {10.03}, {10.04},
	}
	train := []int{0, 1, 2, 3, 4}

	p, err := New(map[string]split.Splitter{
		"A": stubSplitter{parts: []split.Partition{{Train: train, Test: []int{5, 6, 7, 8, 9}}}},
		"B": stubSplitter{parts: []split.Partition{{Train: train, Test: []int{10, 11, 12, 13, 14}}}},
	}, WithDownstreamDistances([]float64{0.98, 0.99, 1.00, 1.01, 1.02}))
	require.NoError(t, err)

	var v captureVisualizer
	assert.ErrorIs(t, p.Visualize(&v), ErrNotFitted)

	require.NoError(t, p.Fit(context.Background(), X, nil, nil, nil))
	require.NoError(t, p.Visualize(&v))

	// Candidates arrive ordered by ascending representativeness: the
	// divergent candidate B first, the winner A last.
	require.Equal(t, []string{"B", "A"}, v.labels)
	require.Len(t, v.distances, 2)
	assert.Len(t, v.downstream, 5)
}
