package stats

import (
	"fmt"

	"github.com/RyanBlaney/boxstat/algorithms/common"
)

// MeanStdDev returns the arithmetic mean and the population standard
// deviation (divisor n) of a finite, non-empty sample.
func MeanStdDev(sample []float64) (mean, sd float64, err error) {
	if len(sample) == 0 {
		return 0, 0, fmt.Errorf("mean/sd: %w", ErrEmptySample)
	}
	if common.HasNonFinite(sample) {
		return 0, 0, fmt.Errorf("mean/sd: %w", ErrNonFiniteSample)
	}

	mean, sd = common.PopMeanStdDev(sample)
	return mean, sd, nil
}
