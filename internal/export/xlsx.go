package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/faizmokh/sugarlog/internal/aggregate"
	"github.com/faizmokh/sugarlog/internal/record"
)

// Sheet names of the spreadsheet output.
const (
	RecordsSheet    = "Records"
	StatisticsSheet = "Statistics"
	StatusColumn    = "Status"
)

const headerColor = "4472C4"

var recordColumnWidths = []float64{12, 8, 20, 13, 13, 13, 40, 12}

// SheetWriter renders records into a spreadsheet document.
type SheetWriter interface {
	Render(records []record.Record, includeStatistics bool) ([]byte, error)
}

// Workbook renders .xlsx files with excelize.
type Workbook struct{}

// Render builds the workbook in memory and returns its bytes.
func (Workbook) Render(records []record.Record, includeStatistics bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(RecordsSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#" + headerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeRecords(f, records, headerStyle); err != nil {
		return nil, err
	}
	if includeStatistics {
		if err := writeStatistics(f, aggregate.Summarize(records), headerStyle); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRecords(f *excelize.File, records []record.Record, headerStyle int) error {
	headers := append(append([]string(nil), Columns...), StatusColumn)
	if err := writeHeader(f, RecordsSheet, headers, headerStyle); err != nil {
		return err
	}

	for i, width := range recordColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(RecordsSheet, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	statusStyles := make(map[aggregate.Status]int)
	for i, r := range records {
		row := i + 2
		values := []any{
			r.Date,
			r.Time,
			r.Name,
			cellReading(r.SugarBefore),
			cellReading(r.SugarAfter),
			cellReading(r.LegacySugarLevel),
			strings.Join(r.Foods, FoodSeparator),
		}
		for col, value := range values {
			if value == nil {
				continue
			}
			if err := setCell(f, RecordsSheet, col+1, row, value); err != nil {
				return err
			}
		}

		status := aggregate.RecordStatus(r)
		style, ok := statusStyles[status]
		if !ok {
			var err error
			style, err = f.NewStyle(&excelize.Style{
				Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
				Fill:      excelize.Fill{Type: "pattern", Color: []string{"#" + status.Color()}, Pattern: 1},
				Alignment: &excelize.Alignment{Horizontal: "center"},
			})
			if err != nil {
				return fmt.Errorf("create status style: %w", err)
			}
			statusStyles[status] = style
		}
		cell, err := excelize.CoordinatesToCellName(len(headers), row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(RecordsSheet, cell, status.String()); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(RecordsSheet, cell, cell, style); err != nil {
			return fmt.Errorf("set status style: %w", err)
		}
	}
	return nil
}

// writeStatistics fills the statistics sheet. With no readings only the
// reading count (zero) is written.
func writeStatistics(f *excelize.File, s aggregate.Summary, headerStyle int) error {
	if _, err := f.NewSheet(StatisticsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeHeader(f, StatisticsSheet, []string{"Metric", "Value", "Percent"}, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(StatisticsSheet, "A", "A", 25); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	rows := [][]any{{"Readings", s.Count}}
	if !s.Empty() {
		rows = append(rows,
			[]any{"Average", round1(s.Average)},
			[]any{"Minimum", s.Min},
			[]any{"Maximum", s.Max},
			[]any{fmt.Sprintf("Low (<%d)", aggregate.LowBelow), s.Low, round1(s.Percent(s.Low))},
			[]any{fmt.Sprintf("Normal (%d-%d)", aggregate.LowBelow, aggregate.NormalUpTo), s.Normal, round1(s.Percent(s.Normal))},
			[]any{fmt.Sprintf("High (>%d)", aggregate.NormalUpTo), s.High, round1(s.Percent(s.High))},
		)
	}

	for i, values := range rows {
		for col, value := range values {
			if err := setCell(f, StatisticsSheet, col+1, i+2, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("set header style: %w", err)
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}

func cellReading(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
