package moodsplit

import (
	"context"
	"iter"
	"sort"

	"github.com/moodsplit/moodsplit/distance"
	"github.com/moodsplit/moodsplit/knn"
	"github.com/moodsplit/moodsplit/split"
)

// Prescriber takes in multiple candidate splitters and a set of downstream
// data points and prescribes the one splitting method that creates the
// test set most representative of the downstream application.
//
// The k-NN distance in the representation space functions as a proxy of
// difficulty: the further a datapoint is from the training set, in general
// the lower a model's performance. The prescriber selects the train/test
// split that best replicates the distance distribution of the downstream
// application.
type Prescriber struct {
	splitters map[string]split.Splitter
	trials    int
	opts      options

	// Fit state; nil/empty until Fit succeeds.
	downstream []float64
	chars      []SplitCharacterization
	prescribed string
}

// New validates the candidate registry and creates an unfitted prescriber.
// All candidates must agree on their number of trials.
func New(splitters map[string]split.Splitter, optFns ...Option) (*Prescriber, error) {
	if len(splitters) == 0 {
		return nil, ErrNoCandidates
	}

	counts := make(map[string]int, len(splitters))
	trials := -1
	consistent := true
	for name, s := range splitters {
		if s == nil {
			return nil, &ErrNilCandidate{Name: name}
		}
		counts[name] = s.TrialCount()
		if trials == -1 {
			trials = s.TrialCount()
		} else if s.TrialCount() != trials {
			consistent = false
		}
	}
	if !consistent {
		return nil, &ErrInconsistentTrials{Counts: counts}
	}

	return &Prescriber{
		splitters: splitters,
		trials:    trials,
		opts:      applyOptions(optFns),
	}, nil
}

// Fitted reports whether a strategy has been prescribed.
func (p *Prescriber) Fitted() bool {
	return p.prescribed != ""
}

// Fit characterizes every candidate splitter against the downstream
// distance distribution and prescribes the most representative one.
//
// The downstream distances are taken from WithDownstreamDistances when
// supplied, otherwise computed as the k-NN distance from XDeployment to X.
// y and groups are forwarded to the candidate splitters.
//
// A failing candidate aborts the whole fit and leaves the prescriber
// unfit. Refitting an already fitted prescriber is allowed.
func (p *Prescriber) Fit(ctx context.Context, X [][]float64, y []float64, groups []int, XDeployment [][]float64) error {
	f, err := distance.Provider(p.opts.metric, p.opts.p)
	if err != nil {
		return err
	}

	downstream := p.opts.downstream
	if downstream == nil {
		if XDeployment == nil {
			return ErrNoDownstream
		}
		downstream, err = knn.MeanDistance(XDeployment, X, p.opts.k, f)
		if err != nil {
			return err
		}
		downstream = filterFinite(downstream)
	}
	p.opts.logger.LogDownstream(ctx, len(downstream), p.opts.downstream != nil)

	chars := make([]SplitCharacterization, 0, len(p.splitters))
	for _, name := range p.candidateNames() {
		splitter := p.splitters[name]

		var trials []SplitCharacterization
		for part, err := range splitter.Split(ctx, X, y, groups) {
			if err != nil {
				p.opts.logger.LogCandidate(ctx, name, 0, 0, err)
				return err
			}

			distances, err := knn.MeanDistance(rows(X, part.Test), rows(X, part.Train), p.opts.k, f)
			if err != nil {
				p.opts.logger.LogCandidate(ctx, name, 0, 0, err)
				return err
			}
			distances = filterFinite(distances)

			score, err := Score(downstream, distances, p.opts.resolution)
			if err != nil {
				p.opts.logger.LogCandidate(ctx, name, 0, 0, err)
				return err
			}

			trials = append(trials, SplitCharacterization{
				Distances:          distances,
				Representativeness: score,
				Label:              name,
			})
		}

		merged, err := Concat(trials)
		if err != nil {
			return err
		}
		p.opts.logger.LogCandidate(ctx, name, merged.Representativeness, len(trials), nil)

		chars = append(chars, merged)
	}

	chosen := Best(chars)

	// Commit only after every candidate characterized successfully.
	p.downstream = downstream
	p.chars = chars
	p.prescribed = chosen.Label

	p.opts.logger.LogPrescription(ctx, chosen.Label, chosen.Representativeness)

	return nil
}

// PrescribedLabel returns the label of the winning strategy.
func (p *Prescriber) PrescribedLabel() (string, error) {
	if !p.Fitted() {
		return "", ErrNotFitted
	}
	return p.prescribed, nil
}

// Prescribed returns the winning candidate splitter. It is usable exactly
// like any candidate for producing the final train/test indices.
func (p *Prescriber) Prescribed() (split.Splitter, error) {
	if !p.Fitted() {
		return nil, ErrNotFitted
	}
	return p.splitters[p.prescribed], nil
}

// Split generates train/test partitions by delegating entirely to the
// prescribed splitter.
func (p *Prescriber) Split(ctx context.Context, X [][]float64, y []float64, groups []int) iter.Seq2[split.Partition, error] {
	s, err := p.Prescribed()
	if err != nil {
		return func(yield func(split.Partition, error) bool) {
			yield(split.Partition{}, err)
		}
	}
	return s.Split(ctx, X, y, groups)
}

// Characterizations returns the merged characterization of every
// candidate, in candidate name order.
func (p *Prescriber) Characterizations() ([]SplitCharacterization, error) {
	if !p.Fitted() {
		return nil, ErrNotFitted
	}
	return p.chars, nil
}

// DownstreamDistances returns the distance sample the candidates were
// scored against.
func (p *Prescriber) DownstreamDistances() ([]float64, error) {
	if !p.Fitted() {
		return nil, ErrNotFitted
	}
	return p.downstream, nil
}

// Ranking returns the prescription report: per candidate its score, a
// best flag, and a dense rank by descending representativeness.
func (p *Prescriber) Ranking() ([]RankedSplit, error) {
	if !p.Fitted() {
		return nil, ErrNotFitted
	}
	return Rank(p.chars), nil
}

// candidateNames returns the registry keys in deterministic order.
func (p *Prescriber) candidateNames() []string {
	names := make([]string, 0, len(p.splitters))
	for name := range p.splitters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// rows gathers the given rows of X.
func rows(X [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = X[j]
	}
	return out
}
