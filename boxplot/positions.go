package boxplot

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/RyanBlaney/boxstat/algorithms/common"
	"github.com/RyanBlaney/boxstat/boxplot/config"
)

// Position is a normalized coordinate on the position axis. On a category
// axis Value is the index of Label in first-seen order.
type Position struct {
	Value    float64
	Label    string
	Category bool
}

func (p Position) String() string {
	if p.Category {
		return p.Label
	}
	return strconv.FormatFloat(p.Value, 'g', -1, 64)
}

// MarshalJSON writes the label for categories and the number otherwise
func (p Position) MarshalJSON() ([]byte, error) {
	if p.Category {
		return json.Marshal(p.Label)
	}
	return json.Marshal(p.Value)
}

// ToFloat converts a numeric value or numeric string to a finite float64
func ToFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if !common.IsFinite(f) {
		return 0, false
	}
	return f, true
}

// toFloats converts values with non-numeric entries mapped to NaN
func toFloats(values []any) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := ToFloat(v)
		if !ok {
			f = math.NaN()
		}
		out[i] = f
	}
	return out
}

// resolveAxis picks linear or category for coords
func resolveAxis(axis config.AxisType, coords []any) config.AxisType {
	if axis != config.AxisAuto {
		return axis
	}
	for _, c := range coords {
		s, ok := c.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		if _, numeric := ToFloat(s); !numeric {
			return config.AxisCategory
		}
	}
	return config.AxisLinear
}

// positionIndex maps coordinates to buckets in first-seen order
type positionIndex struct {
	axis       config.AxisType
	keys       map[string]int
	categories map[string]int
	buckets    []*bucket
}

type bucket struct {
	pos    Position
	first  int
	rows   []int
	values []float64
}

func newPositionIndex(axis config.AxisType) *positionIndex {
	return &positionIndex{
		axis:       axis,
		keys:       make(map[string]int),
		categories: make(map[string]int),
	}
}

// normalize maps a raw coordinate onto the axis; ok is false for coordinates
// that have no place on it.
func (ix *positionIndex) normalize(coord any) (pos Position, key string, ok bool) {
	if ix.axis == config.AxisCategory {
		label, ok := categoryLabel(coord)
		if !ok {
			return Position{}, "", false
		}
		idx, seen := ix.categories[label]
		if !seen {
			idx = len(ix.categories)
			ix.categories[label] = idx
		}
		return Position{Value: float64(idx), Label: label, Category: true}, "c:" + label, true
	}

	f, ok := ToFloat(coord)
	if !ok {
		return Position{}, "", false
	}
	if f == 0 {
		f = 0 // fold -0 into 0
	}
	return Position{Value: f}, "n:" + strconv.FormatFloat(f, 'g', -1, 64), true
}

// add places value (row) into the bucket of coord
func (ix *positionIndex) add(coord any, row int, value float64) bool {
	pos, key, ok := ix.normalize(coord)
	if !ok {
		return false
	}
	i, seen := ix.keys[key]
	if !seen {
		i = len(ix.buckets)
		ix.keys[key] = i
		ix.buckets = append(ix.buckets, &bucket{pos: pos, first: row})
	}
	b := ix.buckets[i]
	if common.IsFinite(value) {
		b.rows = append(b.rows, row)
		b.values = append(b.values, value)
	}
	return true
}

func categoryLabel(coord any) (string, bool) {
	switch c := coord.(type) {
	case nil:
		return "", false
	case string:
		if strings.TrimSpace(c) == "" {
			return "", false
		}
		return c, true
	case bool:
		return strconv.FormatBool(c), true
	}
	if f, ok := ToFloat(coord); ok {
		return strconv.FormatFloat(f, 'g', -1, 64), true
	}
	return "", false
}
