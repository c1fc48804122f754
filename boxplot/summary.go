package boxplot

import (
	"fmt"
	"math"
	"strings"

	"github.com/RyanBlaney/boxstat/algorithms/common"
)

// quartileMask records which of q1, median and q3 are usable at a position
type quartileMask uint8

const (
	q1Valid quartileMask = 1 << iota
	medianValid
	q3Valid

	allValid = q1Valid | medianValid | q3Valid
)

// suppliedBox is the per-position slice of the summary arrays
type suppliedBox struct {
	q1, median, q3         float64
	lowerFence, upperFence float64
}

// maskOf checks each quartile for being numeric and ordered around the median.
// Without a valid median q1 and q3 are judged on their own.
func maskOf(b suppliedBox) quartileMask {
	var m quartileMask
	medOK := common.IsFinite(b.median)
	if medOK {
		m |= medianValid
	}
	if common.IsFinite(b.q1) && (!medOK || b.q1 <= b.median) {
		m |= q1Valid
	}
	if common.IsFinite(b.q3) && (!medOK || b.q3 >= b.median) {
		m |= q3Valid
	}
	return m
}

// collapseRule picks the single value an invalid box collapses to
type collapseRule func(b suppliedBox) float64

// collapseTable is indexed by quartileMask; the allValid entry is unused.
var collapseTable = [8]collapseRule{
	0:                     collapseToFence,
	q1Valid:               func(b suppliedBox) float64 { return b.q1 },
	q3Valid:               func(b suppliedBox) float64 { return b.q3 },
	q1Valid | q3Valid:     func(b suppliedBox) float64 { return (b.q1 + b.q3) / 2 },
	medianValid:           collapseToMedian,
	medianValid | q1Valid: collapseToMedian,
	medianValid | q3Valid: collapseToMedian,
	allValid:              nil,
}

func collapseToMedian(b suppliedBox) float64 { return b.median }

// collapseToFence is the last resort: lower fence, upper fence, then 0
func collapseToFence(b suppliedBox) float64 {
	switch {
	case common.IsFinite(b.lowerFence):
		return b.lowerFence
	case common.IsFinite(b.upperFence):
		return b.upperFence
	}
	return 0
}

// resolveBox validates the supplied quartiles and collapses the box when any
// of them is unusable. The returned names list the invalid fields.
func resolveBox(b suppliedBox) (out suppliedBox, invalid []string) {
	mask := maskOf(b)
	if mask == allValid {
		return b, nil
	}

	if mask&q1Valid == 0 {
		invalid = append(invalid, "q1")
	}
	if mask&medianValid == 0 {
		invalid = append(invalid, "median")
	}
	if mask&q3Valid == 0 {
		invalid = append(invalid, "q3")
	}

	v := collapseTable[mask](b)
	return suppliedBox{q1: v, median: v, q3: v, lowerFence: v, upperFence: v}, invalid
}

// resolveFences keeps supplied fences that lie outside the box and replaces
// the rest with q1 and q3. bad names fences that were supplied but unusable.
func resolveFences(b suppliedBox, lowerGiven, upperGiven bool) (lower, upper float64, bad []string) {
	lower, upper = b.q1, b.q3
	if lowerGiven {
		if common.IsFinite(b.lowerFence) && b.lowerFence <= b.q1 {
			lower = b.lowerFence
		} else {
			bad = append(bad, "lowerfence")
		}
	}
	if upperGiven {
		if common.IsFinite(b.upperFence) && b.upperFence >= b.q3 {
			upper = b.upperFence
		} else {
			bad = append(bad, "upperfence")
		}
	}
	return lower, upper, bad
}

// at returns values[i], NaN when i is past the end
func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return math.NaN()
}

func invalidMessage(fields []string, pos Position) string {
	return fmt.Sprintf("invalid %s at position %s", strings.Join(fields, ", "), pos)
}
