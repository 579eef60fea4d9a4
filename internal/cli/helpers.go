package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/sugarlog/internal/aggregate"
	"github.com/faizmokh/sugarlog/internal/export"
	"github.com/faizmokh/sugarlog/internal/record"
	"github.com/faizmokh/sugarlog/internal/render"
)

func resolveDate(dateFlag string) (time.Time, error) {
	if dateFlag == "" {
		now := time.Now().In(time.Local)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	parsed, err := time.ParseInLocation(record.DateLayout, dateFlag, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date: %w", err)
	}
	return parsed, nil
}

// parsePositions converts 1-based positions into indexes of a list of n
// records. Duplicates are dropped.
func parsePositions(args []string, n int) ([]int, error) {
	seen := make(map[int]bool, len(args))
	indexes := make([]int, 0, len(args))
	for _, arg := range args {
		pos, err := strconv.Atoi(arg)
		if err != nil || pos <= 0 {
			return nil, fmt.Errorf("position must be a positive integer, got %q", arg)
		}
		if pos > n {
			return nil, fmt.Errorf("position %d out of range (have %d record%s)", pos, n, render.Plural(n))
		}
		if seen[pos] {
			continue
		}
		seen[pos] = true
		indexes = append(indexes, pos-1)
	}
	return indexes, nil
}

func describeSource(source record.DateSource) string {
	switch source {
	case record.DateSourceMetadata:
		return "photo metadata"
	case record.DateSourceCurrentTime:
		return "current time"
	default:
		return "unknown"
	}
}

// positionsByID maps each record identity to its 1-based position in store order.
func positionsByID(records []record.Record) map[string]int {
	positions := make(map[string]int, len(records))
	for i, r := range records {
		positions[r.ID] = i + 1
	}
	return positions
}

func printDays(cmd *cobra.Command, days []aggregate.Day, positions map[string]int) {
	out := cmd.OutOrStdout()
	for i, day := range days {
		fmt.Fprintf(out, "%s  %s\n", day.Date, render.Stats(day.Stats()))
		for _, r := range day.Records {
			fmt.Fprintf(out, "%4d. %s\n", positions[r.ID], render.Record(r, nil))
		}
		if i < len(days)-1 {
			fmt.Fprintln(out)
		}
	}
}

// defaultExportPath names an export after the current time inside dir.
func defaultExportPath(dir string, format export.Format, now time.Time) string {
	return filepath.Join(dir, "sugarlog-"+now.Format("20060102-150405")+format.Extension())
}
