package export

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/faizmokh/sugarlog/internal/files"
	"github.com/faizmokh/sugarlog/internal/record"
	"github.com/faizmokh/sugarlog/internal/selection"
)

func sampleRecords() []record.Record {
	legacy := record.Record{
		ID: "r3", Date: "2023-11-20", Time: "21:05", Name: "cena",
		LegacySugarLevel: record.Float(210), Foods: []string{"Pizza"},
	}
	return []record.Record{
		{ID: "r1", Date: "2024-03-01", Time: "08:15", Name: "Desayuno", SugarBefore: record.Float(90), SugarAfter: record.Float(150), Foods: []string{"Pan", "Huevos"}},
		{ID: "r2", Date: "2024-03-01", Time: "13:00", Name: "Comida", SugarBefore: record.Float(110), Foods: []string{"Arroz, con pollo"}},
		legacy,
		{ID: "r4", Date: "2024-03-02", Time: "20:00", Name: "Cena", SugarAfter: record.Float(95.5), Foods: []string{"Sopa"}},
		{ID: "r5", Date: "2024-03-03", Time: "09:00", Name: "Desayuno", SugarBefore: record.Float(62), Foods: []string{"Avena"}},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()
	rows, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"csv": FormatCSV, ".CSV": FormatCSV, "xlsx": FormatXLSX, "Excel": FormatXLSX}
	for input, want := range cases {
		got, err := ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	f, ok := FormatFromPath("/tmp/out.xlsx")
	assert.True(t, ok)
	assert.Equal(t, FormatXLSX, f)
	_, ok = FormatFromPath("/tmp/out")
	assert.False(t, ok)
}

func TestExportCSVWritesOneRowPerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all.csv")
	records := sampleRecords()

	res, err := NewEngine(zap.NewNop()).Export(context.Background(), records, Options{Format: FormatCSV, Path: path})
	require.NoError(t, err)
	assert.Equal(t, len(records), res.Rows)

	rows := readCSV(t, path)
	require.Len(t, rows, len(records)+1)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{"2024-03-01", "08:15", "Desayuno", "90", "150", "", "Pan, Huevos"}, rows[1])
	assert.Equal(t, []string{"2024-03-01", "13:00", "Comida", "110", "", "", "Arroz, con pollo"}, rows[2])
	assert.Equal(t, []string{"2023-11-20", "21:05", "cena", "", "", "210", "Pizza"}, rows[3])
	assert.Equal(t, "95.5", rows[4][4])
}

func TestExportMarkedSubset(t *testing.T) {
	records := sampleRecords()
	marks := selection.New(selection.Snapshot(records))
	marks.Toggle("r2")
	marks.Toggle("r4")

	dir := t.TempDir()
	engine := NewEngine(nil)

	csvPath := filepath.Join(dir, "marked.csv")
	res, err := engine.Export(context.Background(), marks.Marked(), Options{Format: FormatCSV, Path: csvPath})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 3 {
		t.Fatalf("csv lines = %d, want header plus 2", lines)
	}

	xlsxPath := filepath.Join(dir, "marked.xlsx")
	res, err = engine.Export(context.Background(), marks.Marked(), Options{Format: FormatXLSX, Path: xlsxPath})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(RecordsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, []string{RecordsSheet}, f.GetSheetList())
}

func TestExportXLSXWithStatistics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	records := sampleRecords()

	_, err := NewEngine(nil).Export(context.Background(), records, Options{Format: FormatXLSX, Path: path, IncludeStatistics: true})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RecordsSheet, StatisticsSheet}, f.GetSheetList())

	rows, err := f.GetRows(RecordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)
	assert.Equal(t, append(append([]string(nil), Columns...), StatusColumn), rows[0])
	assert.Equal(t, "High", rows[1][7])
	assert.Equal(t, "Normal", rows[2][7])
	assert.Equal(t, "VeryHigh", rows[3][7])
	assert.Equal(t, "Low", rows[5][7])

	readings, err := f.GetCellValue(StatisticsSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "6", readings)

	label, err := f.GetCellValue(StatisticsSheet, "A6")
	require.NoError(t, err)
	assert.Equal(t, "Low (<70)", label)
}

func TestExportXLSXEmptyStatistics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	res, err := NewEngine(nil).Export(context.Background(), nil, Options{Format: FormatXLSX, Path: path, IncludeStatistics: true})
	require.NoError(t, err)
	assert.Zero(t, res.Rows)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(StatisticsSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Metric", "Value", "Percent"}, {"Readings", "0"}}, rows)
}

func TestExportSnapshotIsIndependent(t *testing.T) {
	records := sampleRecords()[:1]
	path := filepath.Join(t.TempDir(), "snap.csv")

	engine := &Engine{logger: zap.NewNop(), sheets: Workbook{}}
	_, err := engine.Export(context.Background(), records, Options{Format: FormatCSV, Path: path})
	require.NoError(t, err)
	records[0].Name = "changed"

	rows := readCSV(t, path)
	assert.Equal(t, "Desayuno", rows[1][2])
}

func TestExportWithoutSpreadsheetBackend(t *testing.T) {
	engine := &Engine{logger: zap.NewNop()}
	dir := t.TempDir()

	_, err := engine.Export(context.Background(), sampleRecords(), Options{Format: FormatXLSX, Path: filepath.Join(dir, "x.xlsx")})
	var dep *DependencyError
	require.True(t, errors.As(err, &dep))
	assert.Equal(t, "spreadsheet", dep.Backend)
	assert.NotEmpty(t, dep.Hint)

	_, err = engine.Export(context.Background(), sampleRecords(), Options{Format: FormatCSV, Path: filepath.Join(dir, "x.csv")})
	assert.NoError(t, err)
}

func TestExportStorageError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewEngine(nil).Export(context.Background(), sampleRecords(), Options{Format: FormatCSV, Path: filepath.Join(blocker, "out.csv")})
	var storage *files.StorageError
	assert.True(t, errors.As(err, &storage), "error = %v", err)
}

func TestExportRequiresPath(t *testing.T) {
	_, err := NewEngine(nil).Export(context.Background(), sampleRecords(), Options{Format: FormatCSV})
	assert.ErrorIs(t, err, ErrMissingPath)
}
