// Package moodsplit prescribes the train/test splitting strategy whose
// distance distribution is most representative of a downstream
// application.
//
// Rather than assuming a single good splitting strategy, the prescriber
// fits every candidate, measures how closely each candidate's
// train-to-test nearest-neighbor distance distribution matches the
// distances expected at deployment time, and selects the best match.
//
// # Quick Start
//
//	candidates := split.Candidates(groups, 5, 0)
//
//	p, err := moodsplit.New(candidates, moodsplit.WithNeighbors(5))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.Fit(ctx, X, nil, groups, XDeployment); err != nil {
//	    log.Fatal(err)
//	}
//
//	label, _ := p.PrescribedLabel()
//	for part, err := range p.Split(ctx, X, nil, groups) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    train, test := part.Train, part.Test
//	    _ = train
//	    _ = test
//	}
//
// # Scoring
//
// Each candidate split is characterized by the mean distance from every
// test point to its k nearest train points. A gaussian density estimate
// of that sample is compared against the downstream density via the
// Jensen-Shannon divergence; the representativeness score is 1 minus the
// base-2 divergence distance, so 1.0 means the split perfectly replicates
// the downstream difficulty profile.
package moodsplit
