package stats

import "sort"

const (
	// DefaultOutlierK is the inner fence multiplier (Tukey)
	DefaultOutlierK = 1.5

	// DefaultExtremeK is the outer threshold separating far outliers
	DefaultExtremeK = 3.0
)

// Tier tags how far a point lies from the box
type Tier string

const (
	TierNone      Tier = "none"      // inside the fences
	TierSuspected Tier = "suspected" // beyond the inner fence, within the outer threshold
	TierOutlier   Tier = "outlier"   // beyond the inner fence (or the outer one when tiers are split)
)

// Fences holds the inner fences and the wider outer thresholds
type Fences struct {
	Lower      float64 `json:"lower"`       // Q1 - k*IQR
	Upper      float64 `json:"upper"`       // Q3 + k*IQR
	OuterLower float64 `json:"outer_lower"` // Q1 - extremeK*IQR
	OuterUpper float64 `json:"outer_upper"` // Q3 + extremeK*IQR
}

// NewFences derives fences from quartiles with the inner multiplier outlierK
// and the outer multiplier extremeK.
func NewFences(q QuartileInfo, outlierK, extremeK float64) Fences {
	return Fences{
		Lower:      q.Q1 - outlierK*q.IQR,
		Upper:      q.Q3 + outlierK*q.IQR,
		OuterLower: q.Q1 - extremeK*q.IQR,
		OuterUpper: q.Q3 + extremeK*q.IQR,
	}
}

// Contains reports whether v lies inside the inner fences (inclusive)
func (f Fences) Contains(v float64) bool {
	return v >= f.Lower && v <= f.Upper
}

// Classify tags v. With split set, outside points within the outer threshold
// are TierSuspected and only those beyond it are TierOutlier; otherwise every
// outside point is TierOutlier.
func (f Fences) Classify(v float64, split bool) Tier {
	if f.Contains(v) {
		return TierNone
	}
	if split && v >= f.OuterLower && v <= f.OuterUpper {
		return TierSuspected
	}
	return TierOutlier
}

// Whiskers returns the most extreme sample values still inside the fences,
// bounded by q1 and q3 so a whisker never reaches into the box.
func Whiskers(sorted []float64, q QuartileInfo, f Fences) (lower, upper float64) {
	n := len(sorted)
	if n == 0 {
		return q.Q1, q.Q3
	}

	lower, upper = q.Q1, q.Q3

	// First sample >= lower fence
	i := sort.SearchFloat64s(sorted, f.Lower)
	if i < n && sorted[i] < lower {
		lower = sorted[i]
	}

	// Last sample <= upper fence
	j := sort.Search(n, func(k int) bool { return sorted[k] > f.Upper }) - 1
	if j >= 0 && sorted[j] > upper {
		upper = sorted[j]
	}

	return lower, upper
}
