package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/faizmokh/sugarlog/internal/export"
	"github.com/faizmokh/sugarlog/internal/record"
)

func seedFive(t *testing.T, app *App) {
	t.Helper()
	for i, clock := range []string{"08:00", "10:30", "13:00", "17:00", "20:00"} {
		seedRecord(t, app, "2024-03-01", clock, "Meal", record.Float(float64(80+i*20)), nil, "Food")
	}
}

func TestExportCommandMarkedPositions(t *testing.T) {
	app := newTestApp(t)
	seedFive(t, app)
	path := filepath.Join(t.TempDir(), "marked.csv")

	out := executeCommand(t, newExportCommand(context.Background(), app), "--output", path, "2", "4")
	assertContains(t, out, "Exported 2 records to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(export.Columns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-03-01,10:30,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "2024-03-01,17:00,"), lines[2])
}

func TestExportCommandInfersSpreadsheet(t *testing.T) {
	app := newTestApp(t)
	seedFive(t, app)
	path := filepath.Join(t.TempDir(), "all.xlsx")

	out := executeCommand(t, newExportCommand(context.Background(), app), "-o", path, "--stats")
	assertContains(t, out, "Exported 5 records")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{export.RecordsSheet, export.StatisticsSheet}, f.GetSheetList())
	rows, err := f.GetRows(export.RecordsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 6)
}

func TestExportCommandDefaultPath(t *testing.T) {
	app := newTestApp(t)
	seedFive(t, app)

	out := executeCommand(t, newExportCommand(context.Background(), app), "--format", "csv")
	assertContains(t, out, "Exported 5 records to "+app.ExportDir)

	matches, err := filepath.Glob(filepath.Join(app.ExportDir, "sugarlog-*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestExportCommandRejectsBadInput(t *testing.T) {
	app := newTestApp(t)
	seedFive(t, app)

	_, err := runCommand(newExportCommand(context.Background(), app), "--format", "pdf")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	_, err = runCommand(newExportCommand(context.Background(), app), "6")
	assert.ErrorContains(t, err, "out of range")
}

func TestDeleteCommand(t *testing.T) {
	app := newTestApp(t)
	seedFive(t, app)

	out := executeCommand(t, newDeleteCommand(context.Background(), app), "1", "3", "3")
	assertContains(t, out, "Deleted 2024-03-01 08:00 Meal")
	assertContains(t, out, "Deleted 2024-03-01 13:00 Meal")
	assertContains(t, out, "Removed 2 records")

	remaining := app.Store.All()
	require.Len(t, remaining, 3)
	assert.Equal(t, []string{"10:30", "17:00", "20:00"},
		[]string{remaining[0].Time, remaining[1].Time, remaining[2].Time})

	_, err := runCommand(newDeleteCommand(context.Background(), app), "0")
	assert.ErrorContains(t, err, "positive integer")
}
