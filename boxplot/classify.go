package boxplot

import (
	"github.com/RyanBlaney/boxstat/boxplot/config"
)

// input is the resolved form of a trace. Exactly one of raw and summary is
// set unless mode is ModeNone.
type input struct {
	mode        Mode
	orientation config.Orientation
	raw         *rawInput
	summary     *summaryInput

	// Quartile arrays were supplied but x and y take precedence
	ignoredSummary bool
}

type rawInput struct {
	values    []float64
	positions []any // nil when every value shares single
	single    any
}

type summaryInput struct {
	positions []any
	length    int
}

// Classify reports which input contract t satisfies
func Classify(t *Trace) Mode {
	return classify(t).mode
}

func hasSummary(t *Trace) bool {
	return len(t.Q1) > 0 && len(t.Median) > 0 && len(t.Q3) > 0
}

func classify(t *Trace) input {
	hasX, hasY := t.X != nil, t.Y != nil

	switch {
	case hasX && hasY:
		return classifyPaired(t)
	case hasSummary(t):
		return classifySummary(t)
	case hasY:
		if len(t.Y) == 0 {
			return input{mode: ModeNone, orientation: config.OrientationVertical}
		}
		return input{
			mode:        ModeRaw,
			orientation: config.OrientationVertical,
			raw:         &rawInput{values: toFloats(t.Y), single: singlePosition(t.X0, t.Name)},
		}
	case hasX:
		if len(t.X) == 0 {
			return input{mode: ModeNone, orientation: config.OrientationHorizontal}
		}
		return input{
			mode:        ModeRaw,
			orientation: config.OrientationHorizontal,
			raw:         &rawInput{values: toFloats(t.X), single: singlePosition(t.Y0, t.Name)},
		}
	}
	return input{mode: ModeNone, orientation: orientationOr(t.Orientation, config.OrientationVertical)}
}

// classifyPaired handles traces carrying both x and y; the value axis is y
// unless the trace is horizontal.
func classifyPaired(t *Trace) input {
	orientation := config.OrientationVertical
	values, positions := t.Y, t.X
	if t.Orientation == config.OrientationHorizontal {
		orientation = config.OrientationHorizontal
		values, positions = t.X, t.Y
	}

	n := min(len(values), len(positions))
	in := input{mode: ModeRaw, orientation: orientation, ignoredSummary: hasSummary(t)}
	if n == 0 {
		in.mode = ModeNone
		return in
	}
	in.raw = &rawInput{values: toFloats(values[:n]), positions: positions[:n]}
	return in
}

func classifySummary(t *Trace) input {
	n := min(len(t.Q1), len(t.Median), len(t.Q3))
	in := input{mode: ModeSummary, orientation: config.OrientationVertical}

	var positions []any
	switch {
	case t.X != nil:
		positions = t.X
		n = min(n, len(t.X))
	case t.Y != nil:
		positions = t.Y
		n = min(n, len(t.Y))
		in.orientation = config.OrientationHorizontal
	default:
		in.orientation = orientationOr(t.Orientation, config.OrientationVertical)
		start, step := t.X0, t.DX
		if in.orientation == config.OrientationHorizontal {
			start, step = t.Y0, t.DY
		}
		positions = synthesizePositions(start, step, n)
	}

	if n == 0 {
		in.mode = ModeNone
		return in
	}
	in.summary = &summaryInput{positions: positions[:n], length: n}
	return in
}

// synthesizePositions lays n positions out from start in steps of step.
// A non-numeric start falls back to 0 and a zero step to 1.
func synthesizePositions(start any, step float64, n int) []any {
	origin, ok := ToFloat(start)
	if !ok {
		origin = 0
	}
	if step == 0 {
		step = 1
	}
	out := make([]any, n)
	for i := range out {
		out[i] = origin + float64(i)*step
	}
	return out
}

// singlePosition is the shared position of a one-box trace: the explicit
// origin, else the trace name as a category, else 0.
func singlePosition(origin any, name string) any {
	if origin != nil {
		return origin
	}
	if name != "" {
		return name
	}
	return 0.0
}

func orientationOr(o, fallback config.Orientation) config.Orientation {
	if o == config.OrientationUnset {
		return fallback
	}
	return o
}
