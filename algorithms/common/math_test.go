package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedFinite(t *testing.T) {
	in := []float64{3, math.NaN(), 1, math.Inf(1), 2, math.Inf(-1)}
	out := SortedFinite(in)

	assert.Equal(t, []float64{1, 2, 3}, out)
	assert.True(t, math.IsNaN(in[1]), "input must not be modified")
	assert.Equal(t, 3.0, in[0])
}

func TestHasNonFinite(t *testing.T) {
	assert.False(t, HasNonFinite([]float64{1, 2}))
	assert.True(t, HasNonFinite([]float64{1, math.NaN()}))
	assert.True(t, HasNonFinite([]float64{math.Inf(-1)}))
}

func TestPopMeanStdDev(t *testing.T) {
	mean, sd := PopMeanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-12)
	assert.InDelta(t, 2.0, sd, 1e-12)

	mean, sd = PopMeanStdDev([]float64{42})
	assert.Equal(t, 42.0, mean)
	assert.Equal(t, 0.0, sd)

	mean, sd = PopMeanStdDev(nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, sd)
}

func TestMinMax(t *testing.T) {
	lo, hi := MinMax([]float64{4, -1, 9, 3})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 9.0, hi)

	lo, hi = MinMax(nil)
	assert.True(t, math.IsNaN(lo))
	assert.True(t, math.IsNaN(hi))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 15.0, Lerp(10, 20, 0.5))
	assert.Equal(t, 10.0, Lerp(10, 20, 0))
}
