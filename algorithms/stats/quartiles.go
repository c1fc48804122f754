package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/RyanBlaney/boxstat/algorithms/common"
)

// QuartileMethod selects how q1 and q3 are estimated from a finite sample
type QuartileMethod string

const (
	// Linear interpolation between closest ranks, rank = n·p + 0.5 (Hazen, R-5)
	QuartileLinear QuartileMethod = "linear"

	// Median of each half, the odd median element excluded from both halves
	QuartileExclusive QuartileMethod = "exclusive"

	// Median of each half, the odd median element included in both halves (Tukey hinges)
	QuartileInclusive QuartileMethod = "inclusive"
)

var (
	ErrEmptySample     = errors.New("empty sample")
	ErrUnsortedSample  = errors.New("sample is not sorted in ascending order")
	ErrNonFiniteSample = errors.New("sample contains non-finite values")
	ErrUnknownMethod   = errors.New("unknown quartile method")
)

// Valid reports whether m names one of the supported methods
func (m QuartileMethod) Valid() bool {
	switch m {
	case QuartileLinear, QuartileExclusive, QuartileInclusive:
		return true
	}
	return false
}

// ParseQuartileMethod converts a method name; the empty string means linear
func ParseQuartileMethod(s string) (QuartileMethod, error) {
	if s == "" {
		return QuartileLinear, nil
	}
	m := QuartileMethod(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
	return m, nil
}

// QuartileInfo contains quartile-specific information
type QuartileInfo struct {
	Q1     float64 `json:"q1"`     // First quartile
	Median float64 `json:"median"` // Second quartile
	Q3     float64 `json:"q3"`     // Third quartile
	IQR    float64 `json:"iqr"`    // Interquartile range (Q3 - Q1)
}

// Quartiles computes q1, median and q3 of an ascending, finite, non-empty
// sample with the given method. The median is the standard sample median for
// every method; for an even sample size all methods agree on q1 and q3.
//
// References:
//   - Hyndman, R.J., Fan, Y. (1996). "Sample Quantiles in Statistical Packages"
//   - Langford, E. (2006). "Quartiles in Elementary Statistics", JSE 14(3)
func Quartiles(sorted []float64, method QuartileMethod) (QuartileInfo, error) {
	if err := checkSample(sorted); err != nil {
		return QuartileInfo{}, err
	}

	n := len(sorted)
	med := Median(sorted)

	var q1, q3 float64
	switch method {
	case QuartileLinear, "":
		q1 = linearRank(sorted, 0.25)
		q3 = linearRank(sorted, 0.75)

	case QuartileExclusive:
		half := n / 2
		if half == 0 {
			q1, q3 = med, med
		} else {
			q1 = Median(sorted[:half])
			q3 = Median(sorted[n-half:])
		}

	case QuartileInclusive:
		half := n / 2
		if n%2 == 1 {
			half++
		}
		q1 = Median(sorted[:half])
		q3 = Median(sorted[n-half:])

	default:
		return QuartileInfo{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	return QuartileInfo{
		Q1:     q1,
		Median: med,
		Q3:     q3,
		IQR:    q3 - q1,
	}, nil
}

// Median returns the middle value of an ascending sample, averaging the two
// middle elements when the size is even. Panics on an empty sample.
func Median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		panic("stats: median of empty sample")
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// linearRank interpolates at the 1-based real rank n·p + 0.5
func linearRank(sorted []float64, p float64) float64 {
	n := len(sorted)
	r := float64(n)*p + 0.5

	if r <= 1.0 {
		return sorted[0]
	}
	if r >= float64(n) {
		return sorted[n-1]
	}

	lower := math.Floor(r)
	i := int(lower) - 1 // Convert to 0-based index
	return common.Lerp(sorted[i], sorted[i+1], r-lower)
}

func checkSample(sorted []float64) error {
	if len(sorted) == 0 {
		return ErrEmptySample
	}
	if common.HasNonFinite(sorted) {
		return ErrNonFiniteSample
	}
	if !sort.Float64sAreSorted(sorted) {
		return ErrUnsortedSample
	}
	return nil
}
