package moodsplit

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFitted is returned by accessors that require a prescribed
	// strategy before Fit has succeeded.
	ErrNotFitted = errors.New("the splitter has not been fitted yet")

	// ErrNoCandidates is returned when a prescriber is constructed
	// without candidate splitters.
	ErrNoCandidates = errors.New("at least one candidate splitter is required")

	// ErrNoDownstream is returned by Fit when neither precomputed
	// downstream distances nor a deployment feature matrix is available.
	ErrNoDownstream = errors.New("no downstream distances and no deployment set to compute them from")

	// ErrInvalidInput is returned when non-finite values reach the
	// scoring stage. Distances are filtered upstream, so hitting this
	// from Fit indicates a filtering bug rather than bad user data.
	ErrInvalidInput = errors.New("non-finite values in distance sample")

	// ErrLabelMismatch is returned when merging split characterizations
	// with different labels.
	ErrLabelMismatch = errors.New("can only merge equally labeled split characterizations")
)

// ErrInsufficientSample indicates a distance sample with too few distinct
// values for density estimation.
type ErrInsufficientSample struct {
	Distinct int
}

func (e *ErrInsufficientSample) Error() string {
	return fmt.Sprintf("insufficient sample: %d distinct values, density estimation needs at least 2", e.Distinct)
}

// ErrInconsistentTrials indicates candidate splitters that disagree on
// their configured number of trials.
type ErrInconsistentTrials struct {
	Counts map[string]int
}

func (e *ErrInconsistentTrials) Error() string {
	return fmt.Sprintf("trial count is inconsistent across the candidate splitters: %v", e.Counts)
}

// ErrNilCandidate indicates a nil splitter in the candidate registry.
type ErrNilCandidate struct {
	Name string
}

func (e *ErrNilCandidate) Error() string {
	return fmt.Sprintf("candidate splitter %q is nil", e.Name)
}
