package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/faizmokh/sugarlog/internal/export"
	"github.com/faizmokh/sugarlog/internal/metadata"
	"github.com/faizmokh/sugarlog/internal/record"
	"github.com/faizmokh/sugarlog/internal/store"
)

type mockIdentifier struct {
	mock.Mock
}

func (m *mockIdentifier) Identify(ctx context.Context, imagePath string) ([]string, error) {
	args := m.Called(ctx, imagePath)
	foods, _ := args.Get(0).([]string)
	return foods, args.Error(1)
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(context.Background(), filepath.Join(dir, "data.json"), nil)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return &App{
		Store:     st,
		Resolver:  metadata.NewResolver(nil),
		Exporter:  export.NewEngine(nil),
		Logger:    zap.NewNop(),
		ExportDir: dir,
	}
}

func seedRecord(t *testing.T, app *App, date, clock, name string, before, after *float64, foods ...string) record.Record {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		t.Fatalf("parse timestamp: %v", err)
	}
	saved, err := app.Store.Append(context.Background(), record.Record{
		Date:        date,
		Time:        clock,
		Timestamp:   ts,
		Name:        name,
		SugarBefore: before,
		SugarAfter:  after,
		Foods:       foods,
		DateSource:  record.DateSourceMetadata,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	return saved
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	out, err := runCommand(cmd, args...)
	if err != nil {
		t.Fatalf("cmd.Execute(%q): %v\n%s", args, err, out)
	}
	return out
}

func runCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q missing substring %q", output, want)
	}
}

func assertNotContains(t *testing.T, output, want string) {
	t.Helper()
	if strings.Contains(output, want) {
		t.Fatalf("output %q unexpectedly contained substring %q", output, want)
	}
}
