package boxplot

import (
	"github.com/RyanBlaney/boxstat/algorithms/stats"
	"github.com/RyanBlaney/boxstat/boxplot/config"
)

// Trace is one box plot series as handed over by the data-intake layer.
//
// X and Y hold either raw values or position coordinates depending on the
// mode; nil means absent while an empty slice means present but empty.
// Summary arrays use NaN for missing or non-numeric entries.
type Trace struct {
	Name string `json:"name,omitempty"`

	X  []any   `json:"x,omitempty"`
	Y  []any   `json:"y,omitempty"`
	X0 any     `json:"x0,omitempty"`
	Y0 any     `json:"y0,omitempty"`
	DX float64 `json:"dx,omitempty" validate:"gte=0"`
	DY float64 `json:"dy,omitempty" validate:"gte=0"`

	Orientation  config.Orientation `json:"orientation,omitempty" validate:"omitempty,oneof=v h"`
	PositionAxis config.AxisType    `json:"position_axis,omitempty" validate:"omitempty,oneof=linear category"`

	QuartileMethod   stats.QuartileMethod `json:"quartilemethod,omitempty" validate:"omitempty,oneof=linear exclusive inclusive"`
	BoxPoints        config.BoxPoints     `json:"boxpoints,omitempty" validate:"omitempty,oneof=false outliers suspectedoutliers all"`
	OutlierHighlight bool                 `json:"outlier_highlight,omitempty"`
	Notched          *bool                `json:"notched,omitempty"`
	NotchWidth       float64              `json:"notchwidth,omitempty" validate:"gte=0,lte=0.5"`
	BoxMean          config.MeanMode      `json:"boxmean,omitempty" validate:"omitempty,oneof=off mean sd"`

	// Summary-Supplied inputs, one entry per position
	Q1         []float64   `json:"q1,omitempty"`
	Median     []float64   `json:"median,omitempty"`
	Q3         []float64   `json:"q3,omitempty"`
	LowerFence []float64   `json:"lowerfence,omitempty"`
	UpperFence []float64   `json:"upperfence,omitempty"`
	Mean       []float64   `json:"mean,omitempty"`
	SD         []float64   `json:"sd,omitempty"`
	NotchSpan  []float64   `json:"notchspan,omitempty"`
	Outliers   [][]float64 `json:"outliers,omitempty"`
}

// Mode is the input contract a trace resolves to
type Mode string

const (
	ModeNone    Mode = "none"    // neither usable values nor a complete summary
	ModeRaw     Mode = "raw"     // raw samples grouped by position
	ModeSummary Mode = "summary" // q1/median/q3 supplied per position
)

// CalcPoint is one observation kept for the point overlay
type CalcPoint struct {
	Value float64    `json:"value"`
	Index int        `json:"index"` // row in the value array, or in the supplied outlier list
	Tier  stats.Tier `json:"tier"`
}

// Record holds the statistics of one position
type Record struct {
	Position Position `json:"position"`
	Index    int      `json:"index"` // first input row of this position
	N        int      `json:"n"`     // sample size, 0 in summary mode

	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Q1           float64 `json:"q1"`
	Median       float64 `json:"median"`
	Q3           float64 `json:"q3"`
	LowerFence   float64 `json:"lowerfence"`
	UpperFence   float64 `json:"upperfence"`
	LowerWhisker float64 `json:"lowerwhisker"`
	UpperWhisker float64 `json:"upperwhisker"`

	Mean      *float64 `json:"mean,omitempty"`
	SD        *float64 `json:"sd,omitempty"`
	NotchSpan *float64 `json:"notchspan,omitempty"` // half-width around the median

	Points []CalcPoint `json:"points"`
}

// NotchInterval returns the notch bounds around the median
func (r Record) NotchInterval() (lo, hi float64, ok bool) {
	if r.NotchSpan == nil {
		return 0, 0, false
	}
	return r.Median - *r.NotchSpan, r.Median + *r.NotchSpan, true
}

// WarningKind classifies non-fatal input problems
type WarningKind string

const (
	WarnInvalidQuartile  WarningKind = "invalid-quartile"
	WarnInvalidFence     WarningKind = "invalid-fence"
	WarnInvalidMean      WarningKind = "invalid-mean"
	WarnInvalidSD        WarningKind = "invalid-sd"
	WarnInvalidNotchSpan WarningKind = "invalid-notchspan"
	WarnDegenerateNotch  WarningKind = "degenerate-notch"
	WarnIgnoredSummary   WarningKind = "ignored-summary"
)

// Warning reports a recovered input problem
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Index    int         `json:"index"` // input row, -1 for trace-level warnings
	Position string      `json:"position,omitempty"`
	Fields   []string    `json:"fields,omitempty"`
	Message  string      `json:"message"`
}

// Result is the per-trace output
type Result struct {
	Name         string             `json:"name,omitempty"`
	Mode         Mode               `json:"mode"`
	Orientation  config.Orientation `json:"orientation,omitempty"`
	PositionAxis config.AxisType    `json:"position_axis,omitempty"`

	// Resolved trace attributes
	QuartileMethod stats.QuartileMethod `json:"quartilemethod,omitempty"`
	BoxPoints      config.BoxPoints     `json:"boxpoints"`
	BoxMean        config.MeanMode      `json:"boxmean"`
	Notched        bool                 `json:"notched"`
	NotchWidth     float64              `json:"notchwidth,omitempty"`
	FencesSupplied bool                 `json:"fences_supplied,omitempty"`

	Visible  bool      `json:"visible"`
	Records  []Record  `json:"records"`
	Dropped  int       `json:"dropped"` // positions dropped for missing data
	Warnings []Warning `json:"warnings,omitempty"`
}
