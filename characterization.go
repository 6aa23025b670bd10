package moodsplit

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// SplitCharacterization pairs the train-to-test distance sample of one
// splitting strategy with its representativeness score.
type SplitCharacterization struct {
	Distances          []float64
	Representativeness float64
	Label              string
}

// Equal reports whether two characterizations describe the same outcome.
// Equality is defined on (label, representativeness), not on the distance
// samples: two independently computed characterizations with identical
// label and score are the same result.
func (c SplitCharacterization) Equal(other SplitCharacterization) bool {
	return c.Label == other.Label && c.Representativeness == other.Representativeness
}

func (c SplitCharacterization) String() string {
	return fmt.Sprintf("SplitCharacterization[%s]", c.Label)
}

// Concat merges the characterizations of repeated trials of one strategy:
// distance samples are concatenated and the per-trial scores averaged.
// All inputs must carry the same label.
func Concat(chars []SplitCharacterization) (SplitCharacterization, error) {
	if len(chars) == 0 {
		return SplitCharacterization{}, ErrLabelMismatch
	}

	label := chars[0].Label
	var distances []float64
	scores := make([]float64, 0, len(chars))

	for _, c := range chars {
		if c.Label != label {
			return SplitCharacterization{}, ErrLabelMismatch
		}
		distances = append(distances, c.Distances...)
		scores = append(scores, c.Representativeness)
	}

	return SplitCharacterization{
		Distances:          distances,
		Representativeness: stat.Mean(scores, nil),
		Label:              label,
	}, nil
}

// Best returns the characterization with the maximal representativeness.
// The first maximum wins on exact ties.
func Best(chars []SplitCharacterization) SplitCharacterization {
	best := chars[0]
	for _, c := range chars[1:] {
		if c.Representativeness > best.Representativeness {
			best = c
		}
	}
	return best
}

// RankedSplit is one row of the prescription report.
type RankedSplit struct {
	Label              string
	Representativeness float64
	Best               bool
	Rank               int
}

// Rank orders characterizations by descending representativeness and
// assigns dense ranks: exact ties share a rank and the next distinct
// score gets the following one.
func Rank(chars []SplitCharacterization) []RankedSplit {
	best := Best(chars)

	rows := make([]RankedSplit, len(chars))
	for i, c := range chars {
		rank := 1
		seen := map[float64]struct{}{}
		for _, o := range chars {
			if o.Representativeness > c.Representativeness {
				if _, ok := seen[o.Representativeness]; !ok {
					seen[o.Representativeness] = struct{}{}
					rank++
				}
			}
		}
		rows[i] = RankedSplit{
			Label:              c.Label,
			Representativeness: c.Representativeness,
			Best:               c.Equal(best),
			Rank:               rank,
		}
	}
	return rows
}
