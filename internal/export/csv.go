package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/faizmokh/sugarlog/internal/record"
)

// Columns is the header shared by both formats. The spreadsheet appends a
// Status column.
var Columns = []string{
	"Date",
	"Time",
	"Name",
	"SugarBefore",
	"SugarAfter",
	"LegacySugar",
	"Foods",
}

// FoodSeparator joins the foods of a record into one cell.
const FoodSeparator = ", "

func renderCSV(records []record.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	for _, r := range records {
		if err := w.Write(row(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// row renders one record. Missing readings are empty cells.
func row(r record.Record) []string {
	return []string{
		r.Date,
		r.Time,
		r.Name,
		reading(r.SugarBefore),
		reading(r.SugarAfter),
		reading(r.LegacySugarLevel),
		strings.Join(r.Foods, FoodSeparator),
	}
}

func reading(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
