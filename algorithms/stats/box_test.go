package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFencesClassify(t *testing.T) {
	q := QuartileInfo{Q1: 10, Median: 15, Q3: 20, IQR: 10}
	f := NewFences(q, DefaultOutlierK, DefaultExtremeK)

	assert.Equal(t, Fences{Lower: -5, Upper: 35, OuterLower: -20, OuterUpper: 50}, f)

	cases := []struct {
		v     float64
		split bool
		want  Tier
	}{
		{v: 15, want: TierNone},
		{v: -5, want: TierNone},
		{v: 35, want: TierNone},
		{v: 40, want: TierOutlier},
		{v: 40, split: true, want: TierSuspected},
		{v: -20, split: true, want: TierSuspected},
		{v: 60, split: true, want: TierOutlier},
		{v: -21, split: true, want: TierOutlier},
		{v: 60, want: TierOutlier},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, f.Classify(tc.v, tc.split), "v=%v split=%v", tc.v, tc.split)
	}
}

func TestWhiskers(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 100}
	q, err := Quartiles(sorted, QuartileLinear)
	require.NoError(t, err)
	require.Equal(t, 2.0, q.Q1)
	require.Equal(t, 5.0, q.Q3)

	f := NewFences(q, DefaultOutlierK, DefaultExtremeK)
	lo, hi := Whiskers(sorted, q, f)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 5.0, hi)

	// Whiskers never reach into the box
	tight := []float64{5, 5, 5, 5}
	q, err = Quartiles(tight, QuartileLinear)
	require.NoError(t, err)
	lo, hi = Whiskers(tight, q, NewFences(q, DefaultOutlierK, DefaultExtremeK))
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, 5.0, hi)
}

func TestNotchSpan(t *testing.T) {
	cases := []struct {
		name       string
		iqr        float64
		n          int
		want       float64
		degenerate bool
	}{
		{name: "regular", iqr: 4, n: 16, want: 1.57},
		{name: "zero iqr", iqr: 0, n: 5, want: 0},
		{name: "clamped", iqr: 4, n: 1, want: 2, degenerate: true},
		{name: "just under half", iqr: 3.14, n: 10, want: 1.57 * 3.14 / math.Sqrt(10)},
		{name: "just over half", iqr: 3.14, n: 9, want: 1.57, degenerate: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			span, degenerate, err := NotchSpan(tc.iqr, tc.n, DefaultNotchK)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, span, 1e-12)
			assert.Equal(t, tc.degenerate, degenerate)
		})
	}

	_, _, err := NotchSpan(1, 0, DefaultNotchK)
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestMeanStdDev(t *testing.T) {
	mean, sd, err := MeanStdDev([]float64{0, 0.3, 0.5, 0.6, 0.7})
	require.NoError(t, err)
	assert.InDelta(t, 0.42, mean, 1e-12)
	assert.InDelta(t, math.Sqrt(0.0616), sd, 1e-12)

	_, _, err = MeanStdDev(nil)
	assert.ErrorIs(t, err, ErrEmptySample)

	_, _, err = MeanStdDev([]float64{1, math.Inf(1)})
	assert.ErrorIs(t, err, ErrNonFiniteSample)
}

func TestBoxAnalyzerAnalyze(t *testing.T) {
	a := NewBoxAnalyzerWithMethod(QuartileExclusive)
	assert.Equal(t, QuartileExclusive, a.Method())

	summary, err := a.Analyze([]float64{49, 6, math.NaN(), 7, 15, 36, 39, 40, 41, 42, 43, 47})
	require.NoError(t, err)

	assert.Len(t, summary.Values, 11)
	assert.Equal(t, 15.0, summary.Quartiles.Q1)
	assert.Equal(t, 40.0, summary.Quartiles.Median)
	assert.Equal(t, 43.0, summary.Quartiles.Q3)
	assert.Equal(t, 6.0, summary.Min)
	assert.Equal(t, 49.0, summary.Max)
	assert.Equal(t, 15.0-1.5*28, summary.Fences.Lower)
	assert.Equal(t, 43.0+1.5*28, summary.Fences.Upper)
	assert.Equal(t, 6.0, summary.LowerWhisker)
	assert.Equal(t, 49.0, summary.UpperWhisker)
	assert.InDelta(t, 1.57*28/math.Sqrt(11), summary.NotchSpan, 1e-12)
	assert.False(t, summary.NotchDegenerate)

	_, err = a.Analyze([]float64{math.NaN()})
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestBoxAnalyzerThresholds(t *testing.T) {
	a := NewBoxAnalyzer()
	outlierK, extremeK, notchK := a.Thresholds()
	assert.Equal(t, []float64{1.5, 3.0, 1.57}, []float64{outlierK, extremeK, notchK})

	a.SetThresholds(1, 2, 1.58)
	a.SetMethod(QuartileInclusive)

	summary, err := a.Analyze([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, QuartileInfo{Q1: 2, Median: 3, Q3: 4, IQR: 2}, summary.Quartiles)
	assert.Equal(t, Fences{Lower: 0, Upper: 6, OuterLower: -2, OuterUpper: 8}, summary.Fences)
}
