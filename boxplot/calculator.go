package boxplot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/boxstat/algorithms/common"
	"github.com/RyanBlaney/boxstat/algorithms/stats"
	"github.com/RyanBlaney/boxstat/boxplot/config"
	"github.com/RyanBlaney/boxstat/logging"
)

// ErrNilTrace is returned when Calc is handed a nil trace
var ErrNilTrace = errors.New("trace cannot be nil")

// Calculator computes per-position box statistics for traces. It holds only
// read-only state and is safe for concurrent use.
type Calculator struct {
	config  config.Engine
	logger  logging.Logger
	metrics *Metrics
}

// Option customizes a Calculator
type Option func(*Calculator)

// WithConfig replaces the default engine configuration
func WithConfig(cfg config.Engine) Option {
	return func(c *Calculator) {
		c.config = cfg
	}
}

// WithLogger sets the logger; the global logger is used otherwise
func WithLogger(logger logging.Logger) Option {
	return func(c *Calculator) {
		c.logger = logger
	}
}

// WithMetrics enables metric collection
func WithMetrics(m *Metrics) Option {
	return func(c *Calculator) {
		c.metrics = m
	}
}

// NewCalculator creates a calculator, validating its configuration
func NewCalculator(opts ...Option) (*Calculator, error) {
	c := &Calculator{config: config.DefaultEngine()}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	fields := logging.Fields{"component": "box_calculator"}
	if c.logger == nil {
		c.logger = logging.WithFields(fields)
	} else {
		c.logger = c.logger.WithFields(fields)
	}

	return c, nil
}

// Config returns the engine configuration in use
func (c *Calculator) Config() config.Engine {
	return c.config
}

// Calc computes the box statistics of one trace. Recoverable input problems
// are reported as warnings on the result; only contract violations fail.
func (c *Calculator) Calc(t *Trace) (*Result, error) {
	if t == nil {
		return nil, ErrNilTrace
	}
	if err := config.ValidateStruct(t); err != nil {
		return nil, err
	}

	start := time.Now()
	in := classify(t)

	res := &Result{
		Name:        t.Name,
		Mode:        in.mode,
		Orientation: in.orientation,
		Records:     []Record{},
	}
	c.resolveAttributes(t, in.mode, res)

	logger := c.logger.WithFields(logging.Fields{
		"function": "Calc",
		"trace":    t.Name,
		"mode":     in.mode,
	})

	logger.Debug("Starting box calculation", logging.Fields{
		"quartile_method": res.QuartileMethod,
		"boxpoints":       res.BoxPoints,
	})

	if in.ignoredSummary {
		addWarning(res, WarnIgnoredSummary, -1, "", []string{"q1", "median", "q3"},
			"q1/median/q3 ignored: trace carries both x and y samples")
	}

	switch in.mode {
	case ModeRaw:
		if err := c.calcRaw(t, in.raw, res); err != nil {
			logger.Error(err, "Box calculation failed")
			return nil, err
		}
	case ModeSummary:
		c.calcSummary(t, in.summary, res)
	}

	res.Visible = len(res.Records) > 0

	for _, w := range res.Warnings {
		logger.Warn(w.Message, logging.Fields{
			"kind":  w.Kind,
			"index": w.Index,
		})
	}

	c.metrics.observe(res, time.Since(start))

	logger.Debug("Box calculation completed", logging.Fields{
		"positions": len(res.Records),
		"dropped":   res.Dropped,
		"warnings":  len(res.Warnings),
	})

	return res, nil
}

// CalcAll computes every trace concurrently, bounded by the configured worker
// count. Results keep the input order; the first error cancels the rest.
func (c *Calculator) CalcAll(ctx context.Context, traces []*Trace) ([]*Result, error) {
	results := make([]*Result, len(traces))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Workers)

	for i, t := range traces {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := c.Calc(t)
			if err != nil {
				return fmt.Errorf("trace %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolveAttributes fills in the defaults that depend on the input mode
func (c *Calculator) resolveAttributes(t *Trace, mode Mode, res *Result) {
	summary := mode == ModeSummary

	res.QuartileMethod = t.QuartileMethod
	if res.QuartileMethod == "" {
		res.QuartileMethod = c.config.QuartileMethod
	}
	if res.QuartileMethod == "" {
		res.QuartileMethod = stats.QuartileLinear
	}

	switch {
	case summary && t.Outliers != nil:
		res.BoxPoints = config.BoxPointsOutliers
	case t.BoxPoints != config.BoxPointsUnset:
		res.BoxPoints = t.BoxPoints
	case summary:
		res.BoxPoints = config.BoxPointsOff
	case t.OutlierHighlight:
		res.BoxPoints = config.BoxPointsSuspected
	default:
		res.BoxPoints = config.BoxPointsOutliers
	}

	switch {
	case t.BoxMean != config.MeanUnset:
		res.BoxMean = t.BoxMean
	case summary && t.Mean != nil && t.SD != nil:
		res.BoxMean = config.MeanSD
	case summary && t.Mean != nil:
		res.BoxMean = config.MeanLine
	default:
		res.BoxMean = config.MeanOff
	}

	switch {
	case summary && t.NotchSpan != nil:
		res.Notched = true
	case t.Notched != nil:
		res.Notched = *t.Notched
	default:
		res.Notched = !summary && t.NotchWidth > 0
	}
	if res.Notched {
		res.NotchWidth = t.NotchWidth
		if res.NotchWidth == 0 {
			res.NotchWidth = c.config.NotchWidth
		}
	}

	res.FencesSupplied = summary && (t.LowerFence != nil || t.UpperFence != nil)
}

func (c *Calculator) newAnalyzer(method stats.QuartileMethod) *stats.BoxAnalyzer {
	analyzer := stats.NewBoxAnalyzerWithMethod(method)
	analyzer.SetThresholds(c.config.OutlierK, c.config.ExtremeK, c.config.NotchK)
	return analyzer
}

func (c *Calculator) calcRaw(t *Trace, raw *rawInput, res *Result) error {
	coords := raw.positions
	if coords == nil {
		coords = []any{raw.single}
	}
	res.PositionAxis = resolveAxis(t.PositionAxis, coords)

	ix := newPositionIndex(res.PositionAxis)
	for i, v := range raw.values {
		coord := raw.single
		if raw.positions != nil {
			coord = raw.positions[i]
		}
		ix.add(coord, i, v)
	}

	analyzer := c.newAnalyzer(res.QuartileMethod)

	for _, b := range ix.buckets {
		if len(b.values) == 0 {
			res.Dropped++
			continue
		}

		box, err := analyzer.Analyze(b.values)
		if err != nil {
			return fmt.Errorf("position %s: %w", b.pos, err)
		}

		rec := Record{
			Position:     b.pos,
			Index:        b.first,
			N:            len(box.Values),
			Min:          box.Min,
			Max:          box.Max,
			Q1:           box.Quartiles.Q1,
			Median:       box.Quartiles.Median,
			Q3:           box.Quartiles.Q3,
			LowerFence:   box.Fences.Lower,
			UpperFence:   box.Fences.Upper,
			LowerWhisker: box.LowerWhisker,
			UpperWhisker: box.UpperWhisker,
			Points:       selectPoints(b, box.Fences, res.BoxPoints),
		}

		if res.BoxMean.ShowMean() {
			rec.Mean = float64Ptr(box.Mean)
		}
		if res.BoxMean.ShowSD() {
			rec.SD = float64Ptr(box.StdDev)
		}

		if res.Notched {
			rec.NotchSpan = float64Ptr(box.NotchSpan)
			if box.NotchDegenerate {
				addWarning(res, WarnDegenerateNotch, b.first, b.pos.String(), []string{"notchspan"},
					fmt.Sprintf("notch wider than the box at position %s, clamped to half the IQR", b.pos))
			}
		}

		res.Records = append(res.Records, rec)
	}

	return nil
}

// selectPoints keeps the bucket samples the policy asks for, in input order
func selectPoints(b *bucket, f stats.Fences, policy config.BoxPoints) []CalcPoint {
	points := []CalcPoint{}
	split := policy == config.BoxPointsSuspected

	for k, v := range b.values {
		tier := f.Classify(v, split)
		switch policy {
		case config.BoxPointsAll:
		case config.BoxPointsOutliers, config.BoxPointsSuspected:
			if tier == stats.TierNone {
				continue
			}
		default:
			return points
		}
		points = append(points, CalcPoint{Value: v, Index: b.rows[k], Tier: tier})
	}

	return points
}

func (c *Calculator) calcSummary(t *Trace, s *summaryInput, res *Result) {
	res.PositionAxis = resolveAxis(t.PositionAxis, s.positions)
	ix := newPositionIndex(res.PositionAxis)

	lowerGiven, upperGiven := t.LowerFence != nil, t.UpperFence != nil

	for i := 0; i < s.length; i++ {
		pos, _, ok := ix.normalize(s.positions[i])
		if !ok {
			res.Dropped++
			continue
		}

		supplied := suppliedBox{
			q1:         at(t.Q1, i),
			median:     at(t.Median, i),
			q3:         at(t.Q3, i),
			lowerFence: at(t.LowerFence, i),
			upperFence: at(t.UpperFence, i),
		}

		box, invalid := resolveBox(supplied)
		if len(invalid) > 0 {
			addWarning(res, WarnInvalidQuartile, i, pos.String(), invalid, invalidMessage(invalid, pos))
		} else {
			var bad []string
			box.lowerFence, box.upperFence, bad = resolveFences(supplied, lowerGiven, upperGiven)
			if len(bad) > 0 {
				addWarning(res, WarnInvalidFence, i, pos.String(), bad, invalidMessage(bad, pos))
			}
		}

		rec := Record{
			Position:     pos,
			Index:        i,
			Min:          box.lowerFence,
			Max:          box.upperFence,
			Q1:           box.q1,
			Median:       box.median,
			Q3:           box.q3,
			LowerFence:   box.lowerFence,
			UpperFence:   box.upperFence,
			LowerWhisker: box.lowerFence,
			UpperWhisker: box.upperFence,
			Points:       []CalcPoint{},
		}

		if res.BoxPoints != config.BoxPointsOff && i < len(t.Outliers) {
			finite := make([]float64, 0, len(t.Outliers[i]))
			for j, v := range t.Outliers[i] {
				if !common.IsFinite(v) {
					continue
				}
				rec.Points = append(rec.Points, CalcPoint{Value: v, Index: j, Tier: stats.TierOutlier})
				finite = append(finite, v)
			}
			if len(finite) > 0 {
				lo, hi := common.MinMax(finite)
				rec.Min = math.Min(rec.Min, lo)
				rec.Max = math.Max(rec.Max, hi)
			}
		}

		if res.BoxMean.ShowMean() {
			mean := at(t.Mean, i)
			if !common.IsFinite(mean) {
				mean = box.median
				addWarning(res, WarnInvalidMean, i, pos.String(), []string{"mean"},
					fmt.Sprintf("missing mean at position %s, using the median", pos))
			}
			rec.Mean = float64Ptr(mean)
		}
		if res.BoxMean.ShowSD() {
			sd := at(t.SD, i)
			if !common.IsFinite(sd) || sd < 0 {
				sd = 0
				addWarning(res, WarnInvalidSD, i, pos.String(), []string{"sd"},
					fmt.Sprintf("missing sd at position %s, using 0", pos))
			}
			rec.SD = float64Ptr(sd)
		}

		if res.Notched {
			span := 0.0
			if t.NotchSpan != nil {
				if v := at(t.NotchSpan, i); common.IsFinite(v) && v >= 0 {
					span = v
				} else {
					addWarning(res, WarnInvalidNotchSpan, i, pos.String(), []string{"notchspan"},
						fmt.Sprintf("invalid notchspan at position %s, using 0", pos))
				}
			}
			rec.NotchSpan = float64Ptr(span)
		}

		res.Records = append(res.Records, rec)
	}
}

func addWarning(res *Result, kind WarningKind, index int, position string, fields []string, msg string) {
	res.Warnings = append(res.Warnings, Warning{
		Kind:     kind,
		Index:    index,
		Position: position,
		Fields:   fields,
		Message:  msg,
	})
}

func float64Ptr(v float64) *float64 {
	return &v
}
