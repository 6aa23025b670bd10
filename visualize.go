package moodsplit

import "sort"

// Visualizer renders a comparison of distance distributions. Plotting
// itself lives outside this module; the core only supplies aligned data.
type Visualizer interface {
	// PlotDistanceDistributions receives the downstream distance sample
	// and, per candidate, its distance sample and label. Candidates are
	// ordered by ascending representativeness, so color maps ramp from
	// least to most representative.
	PlotDistanceDistributions(downstream []float64, distances [][]float64, labels []string) error
}

// Visualize hands the fitted characterizations to a plotting collaborator,
// ordered by ascending representativeness.
func (p *Prescriber) Visualize(v Visualizer) error {
	chars, err := p.Characterizations()
	if err != nil {
		return err
	}

	sorted := make([]SplitCharacterization, len(chars))
	copy(sorted, chars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Representativeness < sorted[j].Representativeness
	})

	distances := make([][]float64, len(sorted))
	labels := make([]string, len(sorted))
	for i, c := range sorted {
		distances[i] = c.Distances
		labels[i] = c.Label
	}

	return v.PlotDistanceDistributions(p.downstream, distances, labels)
}
