// Package intake turns external documents into box plot traces
package intake

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/boxstat/algorithms/stats"
	"github.com/RyanBlaney/boxstat/boxplot"
	"github.com/RyanBlaney/boxstat/boxplot/config"
)

// ErrNoTraces is returned for documents without any trace
var ErrNoTraces = errors.New("no traces in document")

type document struct {
	Traces []traceDoc `yaml:"traces"`
}

// traceDoc mirrors boxplot.Trace with loosely typed numeric arrays so that
// nulls and non-numeric entries survive decoding as missing values.
type traceDoc struct {
	Name string `yaml:"name"`

	X  []any   `yaml:"x"`
	Y  []any   `yaml:"y"`
	X0 any     `yaml:"x0"`
	Y0 any     `yaml:"y0"`
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`

	Orientation  config.Orientation `yaml:"orientation"`
	PositionAxis config.AxisType    `yaml:"position_axis"`

	QuartileMethod   stats.QuartileMethod `yaml:"quartilemethod"`
	BoxPoints        config.BoxPoints     `yaml:"boxpoints"`
	OutlierHighlight bool                 `yaml:"outlier_highlight"`
	Notched          *bool                `yaml:"notched"`
	NotchWidth       float64              `yaml:"notchwidth"`
	BoxMean          config.MeanMode      `yaml:"boxmean"`

	Q1         []any   `yaml:"q1"`
	Median     []any   `yaml:"median"`
	Q3         []any   `yaml:"q3"`
	LowerFence []any   `yaml:"lowerfence"`
	UpperFence []any   `yaml:"upperfence"`
	Mean       []any   `yaml:"mean"`
	SD         []any   `yaml:"sd"`
	NotchSpan  []any   `yaml:"notchspan"`
	Outliers   [][]any `yaml:"outliers"`
}

// DecodeTraces reads a YAML or JSON document holding either a list of traces
// or a mapping with a "traces" list.
func DecodeTraces(r io.Reader) ([]*boxplot.Trace, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoTraces
		}
		return nil, fmt.Errorf("decode traces: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	var docs []traceDoc
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&docs); err != nil {
			return nil, fmt.Errorf("decode traces: %w", err)
		}
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode traces: %w", err)
		}
		docs = doc.Traces
	default:
		return nil, fmt.Errorf("decode traces: unexpected %s at line %d", node.Tag, node.Line)
	}

	if len(docs) == 0 {
		return nil, ErrNoTraces
	}

	traces := make([]*boxplot.Trace, len(docs))
	for i := range docs {
		traces[i] = docs[i].trace()
	}
	return traces, nil
}

func (d *traceDoc) trace() *boxplot.Trace {
	t := &boxplot.Trace{
		Name:             d.Name,
		X:                d.X,
		Y:                d.Y,
		X0:               d.X0,
		Y0:               d.Y0,
		DX:               d.DX,
		DY:               d.DY,
		Orientation:      d.Orientation,
		PositionAxis:     d.PositionAxis,
		QuartileMethod:   d.QuartileMethod,
		BoxPoints:        d.BoxPoints,
		OutlierHighlight: d.OutlierHighlight,
		Notched:          d.Notched,
		NotchWidth:       d.NotchWidth,
		BoxMean:          d.BoxMean,
		Q1:               floatsOf(d.Q1),
		Median:           floatsOf(d.Median),
		Q3:               floatsOf(d.Q3),
		LowerFence:       floatsOf(d.LowerFence),
		UpperFence:       floatsOf(d.UpperFence),
		Mean:             floatsOf(d.Mean),
		SD:               floatsOf(d.SD),
		NotchSpan:        floatsOf(d.NotchSpan),
	}

	if d.Outliers != nil {
		t.Outliers = make([][]float64, len(d.Outliers))
		for i, row := range d.Outliers {
			t.Outliers[i] = floatsOf(row)
		}
	}
	return t
}

// floatsOf keeps nil as nil and maps unusable entries to NaN
func floatsOf(values []any) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := boxplot.ToFloat(v)
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out
}
