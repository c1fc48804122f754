package stats

import (
	"fmt"
	"math"
)

const (
	// DefaultNotchK is the McGill, Tukey & Larsen notch coefficient
	DefaultNotchK = 1.57

	// DefaultNotchWidth is the notch width as a fraction of the box width
	DefaultNotchWidth = 0.25
)

// NotchSpan returns the notch half-width around the median, k·IQR/√n
// (McGill, R., Tukey, J.W., Larsen, W.A. (1978). "Variations of box plots").
//
// A notch wider than half the IQR would fold back over the box edges; such a
// span is clamped to IQR/2 and reported as degenerate.
func NotchSpan(iqr float64, n int, k float64) (span float64, degenerate bool, err error) {
	if n < 1 {
		return 0, false, fmt.Errorf("notch span: %w", ErrEmptySample)
	}

	span = k * iqr / math.Sqrt(float64(n))
	if limit := iqr / 2; span > limit {
		return limit, true, nil
	}
	return span, false, nil
}
