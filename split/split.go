package split

import (
	"context"
	"fmt"
	"iter"
	"math"

	"github.com/moodsplit/moodsplit/distance"
)

// Partition is one train/test assignment of row indices into a feature
// matrix. Every row index appears in exactly one of the two sides.
type Partition struct {
	Train []int
	Test  []int
}

// Splitter generates train/test partitions over a feature matrix.
//
// Split returns a restartable lazy sequence of exactly TrialCount
// partitions (fewer only on error). Iteration supports early termination
// by breaking from the loop.
type Splitter interface {
	TrialCount() int
	Split(ctx context.Context, X [][]float64, y []float64, groups []int) iter.Seq2[Partition, error]
}

// DefaultClusters is the cluster count used by the standard candidate
// registry for the cluster-based splitters.
const DefaultClusters = 25

// Candidates builds the standard candidate registry evaluated by the
// prescriber: a random baseline, a predefined-group split, and the two
// cluster-based extrapolation splits. groups carries the caller's
// precomputed group labels (e.g. scaffold classes).
func Candidates(groups []int, trials int, seed int64, opts ...Option) map[string]Splitter {
	return map[string]Splitter{
		"Random":                NewRandom(trials, seed, opts...),
		"Group":                 NewPredefinedGroup(groups, trials, seed, opts...),
		"Perimeter":             NewPerimeter(DefaultClusters, trials, seed, opts...),
		"Maximum Dissimilarity": NewMaxDissimilarity(DefaultClusters, trials, seed, opts...),
	}
}

// ErrInvalidSizes indicates test/train sizes that cannot be satisfied for
// the given number of samples.
type ErrInvalidSizes struct {
	N     int
	Train int
	Test  int
}

func (e *ErrInvalidSizes) Error() string {
	return fmt.Sprintf("invalid split sizes: train=%d test=%d for %d samples", e.Train, e.Test, e.N)
}

// ErrTooFewGroups indicates a clustering that collapsed to fewer distinct
// groups than the splitting algorithm needs.
type ErrTooFewGroups struct {
	Groups int
	Need   int
}

func (e *ErrTooFewGroups) Error() string {
	return fmt.Sprintf("too few distinct groups: have %d, need at least %d", e.Groups, e.Need)
}

const (
	// Default test fractions, applied when neither size is configured.
	defaultTestFraction      = 0.1
	defaultGroupTestFraction = 0.2
)

type config struct {
	testSize     float64
	trainSize    float64
	metric       distance.Metric
	autoMetric   bool
	p            float64
	workers      int
	maxLandmarks int
}

// Option configures splitter behavior shared across the concrete variants.
type Option func(*config)

// WithTestSize sets the test size: values in (0, 1) are a fraction of the
// sample count, values >= 1 an absolute count. If unset, the complement of
// the train size is used, or the splitter's default fraction.
func WithTestSize(v float64) Option {
	return func(c *config) {
		c.testSize = v
	}
}

// WithTrainSize sets the train size with the same fraction-or-count
// semantics as WithTestSize. If unset, the complement of the test size is
// used.
func WithTrainSize(v float64) Option {
	return func(c *config) {
		c.trainSize = v
	}
}

// WithMetric fixes the distance metric used to cluster the feature matrix,
// disabling the binary/real auto-detection.
func WithMetric(m distance.Metric) Option {
	return func(c *config) {
		c.metric = m
		c.autoMetric = false
	}
}

// WithMinkowskiP sets the Minkowski exponent used when the metric is
// MetricMinkowski.
func WithMinkowskiP(p float64) Option {
	return func(c *config) {
		c.p = p
	}
}

// WithWorkers bounds the parallelism of the pairwise distance matrix
// computation. n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithMaxLandmarks bounds the landmark subsample of the kernel map
// embedding used for non-Euclidean metrics.
func WithMaxLandmarks(n int) Option {
	return func(c *config) {
		c.maxLandmarks = n
	}
}

func applyOptions(optFns []Option) config {
	c := config{
		autoMetric: true,
		p:          2,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&c)
		}
	}
	return c
}

// resolveSizes turns the configured fraction-or-count sizes into absolute
// train/test counts over n samples. The test count is rounded up, the
// train count down; an unset side defaults to the complement of the other.
func resolveSizes(n int, testSize, trainSize, defaultTest float64) (nTrain, nTest int, err error) {
	if testSize == 0 && trainSize == 0 {
		testSize = defaultTest
	}

	switch {
	case testSize >= 1:
		nTest = int(testSize)
	case testSize > 0:
		nTest = int(math.Ceil(testSize * float64(n)))
	}

	switch {
	case trainSize >= 1:
		nTrain = int(trainSize)
	case trainSize > 0:
		nTrain = int(float64(n) * trainSize)
	}

	if nTrain == 0 {
		nTrain = n - nTest
	}
	if nTest == 0 {
		nTest = n - nTrain
	}

	if nTrain < 1 || nTest < 1 || nTrain+nTest > n {
		return 0, 0, &ErrInvalidSizes{N: n, Train: nTrain, Test: nTest}
	}

	return nTrain, nTest, nil
}

// fail yields a single terminal error.
func fail(err error) iter.Seq2[Partition, error] {
	return func(yield func(Partition, error) bool) {
		yield(Partition{}, err)
	}
}
