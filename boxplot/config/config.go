package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/boxstat/algorithms/stats"
)

// ErrInvalidConfig wraps every validation failure of Engine or trace attributes
var ErrInvalidConfig = errors.New("invalid configuration")

// validate is the shared validator instance for engine and trace attributes.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct runs the struct-tag validation on v
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Engine configures the box statistics calculator
type Engine struct {
	// Quartile method used when a trace does not choose one
	QuartileMethod stats.QuartileMethod `json:"quartile_method" yaml:"quartile_method" validate:"omitempty,oneof=linear exclusive inclusive"`

	// Fence multipliers: inner fence (1.5) and outer threshold (3.0)
	OutlierK float64 `json:"outlier_k" yaml:"outlier_k" validate:"gt=0"`
	ExtremeK float64 `json:"extreme_k" yaml:"extreme_k" validate:"gtfield=OutlierK"`

	// Notch coefficient (1.57) and default width fraction (0.25)
	NotchK     float64 `json:"notch_k" yaml:"notch_k" validate:"gt=0"`
	NotchWidth float64 `json:"notch_width" yaml:"notch_width" validate:"gt=0,lte=0.5"`

	// Workers bounds concurrent traces in CalcAll
	Workers int `json:"workers" yaml:"workers" validate:"gte=1"`

	LogLevel string `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error fatal"`
}

// DefaultEngine returns sensible defaults for the calculator
func DefaultEngine() Engine {
	return Engine{
		QuartileMethod: stats.QuartileLinear,
		OutlierK:       stats.DefaultOutlierK,
		ExtremeK:       stats.DefaultExtremeK,
		NotchK:         stats.DefaultNotchK,
		NotchWidth:     stats.DefaultNotchWidth,
		Workers:        runtime.NumCPU(),
		LogLevel:       "info",
	}
}

// Validate checks value ranges and enum names
func (e Engine) Validate() error {
	return ValidateStruct(e)
}

// Load reads an engine configuration from path (YAML or JSON), applies
// BOXSTAT_* environment overrides and validates the result. An empty path or
// a missing file yields the defaults.
func Load(path string) (Engine, error) {
	cfg := DefaultEngine()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := loadFromEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Engine) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}

	return nil
}

func loadFromEnv(cfg *Engine) error {
	if v := os.Getenv("BOXSTAT_QUARTILE_METHOD"); v != "" {
		cfg.QuartileMethod = stats.QuartileMethod(v)
	}
	if v := os.Getenv("BOXSTAT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	floatVars := []struct {
		name string
		dst  *float64
	}{
		{"BOXSTAT_OUTLIER_K", &cfg.OutlierK},
		{"BOXSTAT_EXTREME_K", &cfg.ExtremeK},
		{"BOXSTAT_NOTCH_K", &cfg.NotchK},
		{"BOXSTAT_NOTCH_WIDTH", &cfg.NotchWidth},
	}
	for _, fv := range floatVars {
		v := os.Getenv(fv.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, fv.name, v, err)
		}
		*fv.dst = f
	}

	if v := os.Getenv("BOXSTAT_WORKERS"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: BOXSTAT_WORKERS=%q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Workers = i
	}

	return nil
}
