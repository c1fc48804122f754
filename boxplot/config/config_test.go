package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/boxstat/algorithms/stats"
)

func TestDefaultEngineIsValid(t *testing.T) {
	cfg := DefaultEngine()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, stats.QuartileLinear, cfg.QuartileMethod)
	assert.Equal(t, 1.5, cfg.OutlierK)
	assert.Equal(t, 3.0, cfg.ExtremeK)
	assert.Equal(t, 1.57, cfg.NotchK)
	assert.Equal(t, 0.25, cfg.NotchWidth)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
}

func TestEngineValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Engine)
	}{
		{"unknown method", func(e *Engine) { e.QuartileMethod = "nearest" }},
		{"zero outlier k", func(e *Engine) { e.OutlierK = 0 }},
		{"extreme below outlier", func(e *Engine) { e.ExtremeK = 1 }},
		{"notch width too wide", func(e *Engine) { e.NotchWidth = 0.75 }},
		{"no workers", func(e *Engine) { e.Workers = 0 }},
		{"bad log level", func(e *Engine) { e.LogLevel = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultEngine()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quartile_method: inclusive\nnotch_width: 0.1\nworkers: 2\n"), 0o644))

	t.Setenv("BOXSTAT_OUTLIER_K", "2")
	t.Setenv("BOXSTAT_EXTREME_K", "4")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, stats.QuartileInclusive, cfg.QuartileMethod)
	assert.Equal(t, 0.1, cfg.NotchWidth)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 2.0, cfg.OutlierK)
	assert.Equal(t, 4.0, cfg.ExtremeK)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"quartile_method": "exclusive", "workers": 3}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, stats.QuartileExclusive, cfg.QuartileMethod)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultEngine().NotchK, cfg.NotchK)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("BOXSTAT_WORKERS", "many")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("BOXSTAT_QUARTILE_METHOD", "R-7")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBoxPointsDecoding(t *testing.T) {
	var doc struct {
		BoxPoints BoxPoints `json:"boxpoints" yaml:"boxpoints"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"boxpoints": false}`), &doc))
	assert.Equal(t, BoxPointsOff, doc.BoxPoints)
	require.NoError(t, json.Unmarshal([]byte(`{"boxpoints": "suspectedoutliers"}`), &doc))
	assert.Equal(t, BoxPointsSuspected, doc.BoxPoints)
	assert.Error(t, json.Unmarshal([]byte(`{"boxpoints": true}`), &doc))
	assert.Error(t, json.Unmarshal([]byte(`{"boxpoints": "some"}`), &doc))

	require.NoError(t, yaml.Unmarshal([]byte("boxpoints: false"), &doc))
	assert.Equal(t, BoxPointsOff, doc.BoxPoints)
	require.NoError(t, yaml.Unmarshal([]byte("boxpoints: all"), &doc))
	assert.Equal(t, BoxPointsAll, doc.BoxPoints)
	assert.Error(t, yaml.Unmarshal([]byte("boxpoints: true"), &doc))
}

func TestMeanModeDecoding(t *testing.T) {
	var doc struct {
		BoxMean MeanMode `json:"boxmean" yaml:"boxmean"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"boxmean": true}`), &doc))
	assert.Equal(t, MeanLine, doc.BoxMean)
	require.NoError(t, json.Unmarshal([]byte(`{"boxmean": false}`), &doc))
	assert.Equal(t, MeanOff, doc.BoxMean)
	require.NoError(t, json.Unmarshal([]byte(`{"boxmean": "sd"}`), &doc))
	assert.Equal(t, MeanSD, doc.BoxMean)

	require.NoError(t, yaml.Unmarshal([]byte("boxmean: true"), &doc))
	assert.Equal(t, MeanLine, doc.BoxMean)
	assert.Error(t, yaml.Unmarshal([]byte("boxmean: median"), &doc))

	assert.True(t, MeanSD.ShowMean())
	assert.True(t, MeanSD.ShowSD())
	assert.True(t, MeanLine.ShowMean())
	assert.False(t, MeanLine.ShowSD())
	assert.False(t, MeanOff.ShowMean())
}
