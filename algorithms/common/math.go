package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic numeric helpers shared by the box statistics, backed by gonum

// IsFinite reports whether v is neither NaN nor ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SortedFinite returns an ascending copy of data with NaN and ±Inf removed.
// The input slice is never modified.
func SortedFinite(data []float64) []float64 {
	sorted := make([]float64, 0, len(data))
	for _, v := range data {
		if IsFinite(v) {
			sorted = append(sorted, v)
		}
	}
	sort.Float64s(sorted)
	return sorted
}

// HasNonFinite reports whether data contains NaN or ±Inf
func HasNonFinite(data []float64) bool {
	if floats.HasNaN(data) {
		return true
	}
	for _, v := range data {
		if math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// PopMeanStdDev returns the mean and the population standard deviation
// (divisor n) of data. A single observation has zero deviation.
func PopMeanStdDev(data []float64) (mean, std float64) {
	switch len(data) {
	case 0:
		return 0.0, 0.0
	case 1:
		return data[0], 0.0
	}
	return stat.PopMeanStdDev(data, nil)
}

// MinMax returns the smallest and largest value of a non-empty slice
func MinMax(data []float64) (min, max float64) {
	if len(data) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(data), floats.Max(data)
}

// Lerp linearly interpolates between a and b
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
