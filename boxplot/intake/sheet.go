package intake

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/RyanBlaney/boxstat/boxplot"
	"github.com/RyanBlaney/boxstat/boxplot/config"
)

// ReadSheet reads column-wise samples from an xlsx workbook. The first row
// holds the category of each column; the cells below are its samples. An
// empty sheet name selects the first sheet. Columns without a header are
// named after their column letter.
func ReadSheet(path, sheet string) (*boxplot.Trace, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s: %w", path, ErrNoTraces)
		}
		sheet = sheets[0]
	}

	cols, err := f.GetCols(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	t := &boxplot.Trace{
		Name:         sheet,
		X:            []any{},
		Y:            []any{},
		PositionAxis: config.AxisCategory,
	}

	for i, col := range cols {
		if len(col) < 2 {
			continue
		}

		label := strings.TrimSpace(col[0])
		if label == "" {
			label, err = excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return nil, err
			}
		}

		for _, cell := range col[1:] {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			t.X = append(t.X, label)
			t.Y = append(t.Y, cell)
		}
	}

	if len(t.Y) == 0 {
		return nil, fmt.Errorf("sheet %s: %w", sheet, ErrNoTraces)
	}
	return t, nil
}
