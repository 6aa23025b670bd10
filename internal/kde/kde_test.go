package kde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Degenerate(t *testing.T) {
	_, err := New([]float64{1, 1, 1})
	assert.ErrorIs(t, err, ErrDegenerateSample)

	_, err = New([]float64{1})
	assert.ErrorIs(t, err, ErrDegenerateSample)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrDegenerateSample)
}

func TestEvaluate(t *testing.T) {
	sample := []float64{1, 2, 2, 3, 4}

	e, err := New(sample)
	require.NoError(t, err)
	assert.Greater(t, e.Bandwidth(), 0.0)

	dens := e.Evaluate([]float64{2, 10})
	require.Len(t, dens, 2)

	// Density is positive everywhere and highest near the sample mass.
	assert.Greater(t, dens[0], 0.0)
	assert.Greater(t, dens[1], 0.0)
	assert.Greater(t, dens[0], dens[1])
}

func TestEvaluate_Integrates(t *testing.T) {
	sample := []float64{0, 1, 2, 3, 4, 5}
	e, err := New(sample)
	require.NoError(t, err)

	// Riemann sum over a wide grid should be close to 1.
	const n = 2000
	lo, hi := -20.0, 25.0
	step := (hi - lo) / n
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}

	var total float64
	for _, d := range e.Evaluate(grid) {
		total += d * step
	}
	assert.InDelta(t, 1.0, total, 0.01)
}
