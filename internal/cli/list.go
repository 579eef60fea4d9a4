package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/sugarlog/internal/aggregate"
	"github.com/faizmokh/sugarlog/internal/record"
	"github.com/faizmokh/sugarlog/internal/render"
)

func newListCommand(app *App) *cobra.Command {
	var (
		dateFlag string
		daysFlag int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records grouped by day, most recent first.",
		Long: "list prints every record by default. --date limits the output to the days ending on that date " +
			"(one day unless --days is given); --days alone counts back from today.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := app.Store.All()
			records := all

			if dateFlag != "" || daysFlag > 0 {
				end, err := resolveDate(dateFlag)
				if err != nil {
					return err
				}
				days := daysFlag
				if days <= 0 {
					days = 1
				}
				start := end.AddDate(0, 0, -(days - 1))
				records = filterDates(all, start.Format(record.DateLayout), end.Format(record.DateLayout))
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No records.")
				return nil
			}

			h := aggregate.Overview(records)
			fmt.Fprintf(out, "%d record%s over %d day%s (%.1f per day)\n\n",
				h.Records, render.Plural(h.Records), h.Days, render.Plural(h.Days), h.PerDay())
			printDays(cmd, aggregate.GroupByDate(records), positionsByID(all))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Last day to include in YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&daysFlag, "days", 0, "Number of days to include ending on --date")

	return cmd
}

func filterDates(records []record.Record, start, end string) []record.Record {
	var out []record.Record
	for _, r := range records {
		if r.Date >= start && r.Date <= end {
			out = append(out, r)
		}
	}
	return out
}

func newStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize every glucose reading.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := aggregate.Summarize(app.Store.All())
			out := cmd.OutOrStdout()
			if s.Empty() {
				fmt.Fprintln(out, "No readings recorded.")
				return nil
			}

			fmt.Fprintf(out, "Readings: %d\n", s.Count)
			fmt.Fprintf(out, "Average: %.1f mg/dL\n", s.Average)
			fmt.Fprintf(out, "Minimum: %s mg/dL\n", render.Number(s.Min))
			fmt.Fprintf(out, "Maximum: %s mg/dL\n", render.Number(s.Max))
			fmt.Fprintf(out, "Low (<%d): %d (%.1f%%)\n", aggregate.LowBelow, s.Low, s.Percent(s.Low))
			fmt.Fprintf(out, "Normal (%d-%d): %d (%.1f%%)\n", aggregate.LowBelow, aggregate.NormalUpTo, s.Normal, s.Percent(s.Normal))
			fmt.Fprintf(out, "High (>%d): %d (%.1f%%)\n", aggregate.NormalUpTo, s.High, s.Percent(s.High))
			return nil
		},
	}
}

func newNamesCommand(app *App) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "names",
		Short: "Show recently used meal names.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := aggregate.RecentNames(app.Store.All(), limitFlag)
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No meal names yet.")
				return nil
			}
			for i, name := range names {
				fmt.Fprintf(out, "%d. %s\n", i+1, name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum names to show (0 for all)")

	return cmd
}
