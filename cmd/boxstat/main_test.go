package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type resultDoc struct {
	Name           string `json:"name"`
	Mode           string `json:"mode"`
	QuartileMethod string `json:"quartilemethod"`
	Visible        bool   `json:"visible"`
	Records        []struct {
		Position any     `json:"position"`
		Q1       float64 `json:"q1"`
		Median   float64 `json:"median"`
		Q3       float64 `json:"q3"`
		Points   []struct {
			Value float64 `json:"value"`
			Tier  string  `json:"tier"`
		} `json:"points"`
	} `json:"records"`
	Warnings []struct {
		Kind string `json:"kind"`
	} `json:"warnings"`
}

func TestCalcCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.yaml")
	doc := `
traces:
  - name: raw
    y: [6, 7, 15, 36, 39, 40, 41, 42, 43, 47, 49, 200]
  - name: summary
    x: [1]
    q1: [5]
    median: [2]
    q3: [3]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	stdout, stderr, err := execute(t, "calc", "--file", path, "--quartile-method", "exclusive", "--log-level", "warn")
	require.NoError(t, err)

	var results []resultDoc
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)

	raw := results[0]
	assert.Equal(t, "raw", raw.Name)
	assert.Equal(t, "raw", raw.Mode)
	assert.Equal(t, "exclusive", raw.QuartileMethod)
	assert.True(t, raw.Visible)
	require.Len(t, raw.Records, 1)
	assert.Equal(t, 0.0, raw.Records[0].Position)
	require.Len(t, raw.Records[0].Points, 1)
	assert.Equal(t, 200.0, raw.Records[0].Points[0].Value)
	assert.Equal(t, "outlier", raw.Records[0].Points[0].Tier)

	summary := results[1]
	assert.Equal(t, "summary", summary.Mode)
	assert.Equal(t, 2.0, summary.Records[0].Q1)
	require.Len(t, summary.Warnings, 1)
	assert.Equal(t, "invalid-quartile", summary.Warnings[0].Kind)

	assert.Contains(t, stderr, "[WARN] invalid q1 at position 1")
}

func TestCalcCommandSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "mon"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "tue"))
	for i, v := range []float64{1, 2, 3, 4} {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 10))

	dir := t.TempDir()
	path := filepath.Join(dir, "book.xlsx")
	require.NoError(t, f.SaveAs(path))

	out := filepath.Join(dir, "out.json")
	_, _, err := execute(t, "calc", "--xlsx", path, "--sheet", "Sheet1", "--output", out, "--compact")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var results []resultDoc
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 1)
	require.Len(t, results[0].Records, 2)
	assert.Equal(t, "mon", results[0].Records[0].Position)
	assert.Equal(t, 2.5, results[0].Records[0].Median)
	assert.Equal(t, "tue", results[0].Records[1].Position)
}

func TestCalcCommandErrors(t *testing.T) {
	_, _, err := execute(t, "calc")
	assert.Error(t, err)

	_, _, err = execute(t, "calc", "--file", "a.yaml", "--xlsx", "b.xlsx")
	assert.Error(t, err)

	_, _, err = execute(t, "calc", "--file", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "traces.yaml")
	require.NoError(t, os.WriteFile(path, []byte("traces:\n  - y: [1]\n"), 0o644))
	_, _, err = execute(t, "calc", "--file", path, "--quartile-method", "R-7")
	assert.Error(t, err)
}
