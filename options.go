package moodsplit

import (
	"log/slog"

	"github.com/moodsplit/moodsplit/distance"
)

const (
	// DefaultNeighbors is the k used for the nearest-neighbor distance
	// profile.
	DefaultNeighbors = 5

	// DefaultResolution is the number of grid points the density
	// estimates are evaluated on when scoring.
	DefaultResolution = 100
)

type options struct {
	metric     distance.Metric
	p          float64
	k          int
	resolution int
	workers    int
	downstream []float64
	logger     *Logger
}

// Option configures prescriber construction.
type Option func(*options)

// WithMetric configures the distance metric used for the nearest-neighbor
// distance profiles. Default is Minkowski.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithMinkowskiP sets the exponent of the Minkowski metric.
// Default is 2, the Euclidean distance.
func WithMinkowskiP(p float64) Option {
	return func(o *options) {
		o.p = p
	}
}

// WithNeighbors sets the number of nearest neighbors averaged into each
// distance. Default is DefaultNeighbors.
func WithNeighbors(k int) Option {
	return func(o *options) {
		o.k = k
	}
}

// WithResolution sets the density evaluation grid size used when scoring.
// Default is DefaultResolution.
func WithResolution(n int) Option {
	return func(o *options) {
		o.resolution = n
	}
}

// WithWorkers bounds the parallelism of pairwise distance computations.
// n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithDownstreamDistances supplies a precomputed downstream distance
// sample. When set, Fit skips computing it from the deployment set.
func WithDownstreamDistances(distances []float64) Option {
	return func(o *options) {
		o.downstream = distances
	}
}

// WithLogger configures structured logging for the fit procedure.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metric:     distance.MetricMinkowski,
		p:          2,
		k:          DefaultNeighbors,
		resolution: DefaultResolution,
		logger:     NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
