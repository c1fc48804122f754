package stats

import (
	"github.com/RyanBlaney/boxstat/algorithms/common"
)

// BoxSummary contains the box plot statistics of one sample
type BoxSummary struct {
	Values       []float64    `json:"values"`    // Finite values, ascending
	Quartiles    QuartileInfo `json:"quartiles"` // Q1, median, Q3 information
	Fences       Fences       `json:"fences"`    // Inner fences and outer thresholds
	LowerWhisker float64      `json:"lower_whisker"`
	UpperWhisker float64      `json:"upper_whisker"`
	Min          float64      `json:"min"`
	Max          float64      `json:"max"`
	Mean         float64      `json:"mean"`
	StdDev       float64      `json:"std_dev"` // Population standard deviation

	// Notch half-width around the median and whether it had to be clamped
	NotchSpan       float64 `json:"notch_span"`
	NotchDegenerate bool    `json:"notch_degenerate"`
}

// BoxAnalyzer computes box plot statistics for raw samples
//
// This implementation provides:
// 1. Three quartile methods (linear, exclusive, inclusive)
// 2. Tukey fences with a configurable inner multiplier
// 3. A wider outer threshold for two-tier outlier tagging
// 4. McGill notch spans
// 5. Mean and population standard deviation
type BoxAnalyzer struct {
	method   QuartileMethod
	outlierK float64 // Inner fence multiplier (default 1.5)
	extremeK float64 // Outer threshold multiplier (default 3.0)
	notchK   float64 // Notch coefficient (default 1.57)
}

// NewBoxAnalyzer creates an analyzer with the linear method and default thresholds
func NewBoxAnalyzer() *BoxAnalyzer {
	return &BoxAnalyzer{
		method:   QuartileLinear,
		outlierK: DefaultOutlierK,
		extremeK: DefaultExtremeK,
		notchK:   DefaultNotchK,
	}
}

// NewBoxAnalyzerWithMethod creates an analyzer with the given quartile method
func NewBoxAnalyzerWithMethod(method QuartileMethod) *BoxAnalyzer {
	a := NewBoxAnalyzer()
	a.method = method
	return a
}

// SetMethod changes the quartile method
func (a *BoxAnalyzer) SetMethod(method QuartileMethod) {
	a.method = method
}

// Method returns the quartile method in use
func (a *BoxAnalyzer) Method() QuartileMethod {
	return a.method
}

// SetThresholds sets the inner fence, outer threshold and notch multipliers
func (a *BoxAnalyzer) SetThresholds(outlierK, extremeK, notchK float64) {
	a.outlierK = outlierK
	a.extremeK = extremeK
	a.notchK = notchK
}

// Thresholds returns the inner fence, outer threshold and notch multipliers
func (a *BoxAnalyzer) Thresholds() (outlierK, extremeK, notchK float64) {
	return a.outlierK, a.extremeK, a.notchK
}

// Analyze computes the box statistics of data. Non-finite values are ignored;
// a sample without finite values returns ErrEmptySample.
func (a *BoxAnalyzer) Analyze(data []float64) (*BoxSummary, error) {
	values := common.SortedFinite(data)
	if len(values) == 0 {
		return nil, ErrEmptySample
	}

	quartiles, err := Quartiles(values, a.method)
	if err != nil {
		return nil, err
	}

	fences := NewFences(quartiles, a.outlierK, a.extremeK)
	lowerWhisker, upperWhisker := Whiskers(values, quartiles, fences)

	mean, sd, err := MeanStdDev(values)
	if err != nil {
		return nil, err
	}

	span, degenerate, err := NotchSpan(quartiles.IQR, len(values), a.notchK)
	if err != nil {
		return nil, err
	}

	return &BoxSummary{
		Values:          values,
		Quartiles:       quartiles,
		Fences:          fences,
		LowerWhisker:    lowerWhisker,
		UpperWhisker:    upperWhisker,
		Min:             values[0],
		Max:             values[len(values)-1],
		Mean:            mean,
		StdDev:          sd,
		NotchSpan:       span,
		NotchDegenerate: degenerate,
	}, nil
}
