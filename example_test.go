package moodsplit_test

import (
	"context"
	"fmt"
	"log"

	"github.com/moodsplit/moodsplit"
	"github.com/moodsplit/moodsplit/split"
	"github.com/moodsplit/moodsplit/util"
)

// Example prescribes a splitting strategy for a small feature matrix with
// a precomputed downstream distance sample.
func Example() {
	X := util.NewRNG(0).GenerateRandomVectors(40, 8)

	candidates := map[string]split.Splitter{
		"Random": split.NewRandom(3, 0),
	}

	p, err := moodsplit.New(candidates,
		moodsplit.WithNeighbors(3),
		moodsplit.WithDownstreamDistances([]float64{0.4, 0.5, 0.55, 0.6, 0.7}),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := p.Fit(context.Background(), X, nil, nil, nil); err != nil {
		log.Fatal(err)
	}

	label, err := p.PrescribedLabel()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(label)
	// Output: Random
}

// Example_ranking reports every candidate's representativeness rank.
func Example_ranking() {
	X := util.NewRNG(1).GenerateRandomVectors(60, 4)

	groups := make([]int, len(X))
	for i := range groups {
		groups[i] = i % 6
	}

	p, err := moodsplit.New(
		split.Candidates(groups, 3, 42),
		moodsplit.WithNeighbors(3),
	)
	if err != nil {
		log.Fatal(err)
	}

	// Deployment data drawn from the same distribution as X.
	XDeployment := util.NewRNG(2).GenerateRandomVectors(20, 4)

	if err := p.Fit(context.Background(), X, nil, groups, XDeployment); err != nil {
		log.Fatal(err)
	}

	rows, err := p.Ranking()
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range rows {
		if r.Best {
			fmt.Printf("best strategy ranked %d\n", r.Rank)
		}
	}
	// Output: best strategy ranked 1
}
