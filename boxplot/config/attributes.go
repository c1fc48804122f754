package config

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// BoxPoints selects which sample points are kept for the point overlay
type BoxPoints string

const (
	BoxPointsUnset     BoxPoints = ""
	BoxPointsOff       BoxPoints = "false"
	BoxPointsOutliers  BoxPoints = "outliers"
	BoxPointsSuspected BoxPoints = "suspectedoutliers"
	BoxPointsAll       BoxPoints = "all"
)

// ParseBoxPoints accepts "false", a policy name or the empty string
func ParseBoxPoints(s string) (BoxPoints, error) {
	switch b := BoxPoints(s); b {
	case BoxPointsUnset, BoxPointsOff, BoxPointsOutliers, BoxPointsSuspected, BoxPointsAll:
		return b, nil
	}
	return BoxPointsUnset, fmt.Errorf("%w: boxpoints %q", ErrInvalidConfig, s)
}

func (b *BoxPoints) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		if flag {
			return fmt.Errorf("%w: boxpoints true", ErrInvalidConfig)
		}
		*b = BoxPointsOff
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: boxpoints %s", ErrInvalidConfig, data)
	}
	parsed, err := ParseBoxPoints(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func (b *BoxPoints) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!bool" {
		flag, err := strconv.ParseBool(value.Value)
		if err != nil || flag {
			return fmt.Errorf("%w: boxpoints %s", ErrInvalidConfig, value.Value)
		}
		*b = BoxPointsOff
		return nil
	}
	parsed, err := ParseBoxPoints(value.Value)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MeanMode is the tri-state mean display policy
type MeanMode string

const (
	MeanUnset MeanMode = ""
	MeanOff   MeanMode = "off"
	MeanLine  MeanMode = "mean"
	MeanSD    MeanMode = "sd"
)

// ParseMeanMode accepts true/false, "mean", "sd", "off" or the empty string
func ParseMeanMode(s string) (MeanMode, error) {
	switch s {
	case "":
		return MeanUnset, nil
	case "false", "off":
		return MeanOff, nil
	case "true", "mean":
		return MeanLine, nil
	case "sd":
		return MeanSD, nil
	}
	return MeanUnset, fmt.Errorf("%w: boxmean %q", ErrInvalidConfig, s)
}

// ShowMean reports whether a mean is displayed
func (m MeanMode) ShowMean() bool {
	return m == MeanLine || m == MeanSD
}

// ShowSD reports whether a standard deviation is displayed
func (m MeanMode) ShowSD() bool {
	return m == MeanSD
}

func (m *MeanMode) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*m = MeanOff
		if flag {
			*m = MeanLine
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: boxmean %s", ErrInvalidConfig, data)
	}
	parsed, err := ParseMeanMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m *MeanMode) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseMeanMode(value.Value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Orientation tells which axis carries the values
type Orientation string

const (
	OrientationUnset      Orientation = ""
	OrientationVertical   Orientation = "v" // values on y, positions on x
	OrientationHorizontal Orientation = "h" // values on x, positions on y
)

// AxisType controls how position coordinates are interpreted
type AxisType string

const (
	AxisAuto     AxisType = ""         // category if any position is a non-numeric string
	AxisLinear   AxisType = "linear"   // numeric positions only
	AxisCategory AxisType = "category" // every non-empty label is a category
)
