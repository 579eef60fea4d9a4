package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/sugarlog/internal/export"
	"github.com/faizmokh/sugarlog/internal/render"
	"github.com/faizmokh/sugarlog/internal/selection"
)

func newExportCommand(ctx context.Context, app *App) *cobra.Command {
	var (
		formatFlag string
		outputFlag string
		statsFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "export [position ...]",
		Short: "Export records to CSV or a spreadsheet.",
		Long: "export writes every record, or only the records at the given positions (as printed by list). " +
			"The format defaults to the output file's extension, then csv.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format := export.FormatCSV
			switch {
			case formatFlag != "":
				parsed, err := export.ParseFormat(formatFlag)
				if err != nil {
					return err
				}
				format = parsed
			case outputFlag != "":
				if inferred, ok := export.FormatFromPath(outputFlag); ok {
					format = inferred
				}
			}

			records := app.Store.All()
			if len(args) > 0 {
				indexes, err := parsePositions(args, len(records))
				if err != nil {
					return err
				}
				marks := selection.New(app.Store)
				for _, i := range indexes {
					marks.Mark(records[i].ID)
				}
				records = marks.Marked()
			}

			path := outputFlag
			if path == "" {
				path = defaultExportPath(app.ExportDir, format, time.Now())
			}

			res, err := app.Exporter.Export(ctx, records, export.Options{
				Format:            format,
				Path:              path,
				IncludeStatistics: statsFlag,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d record%s to %s\n", res.Rows, render.Plural(res.Rows), res.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "", "Output format: csv|xlsx")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination file (default: a timestamped file in the data directory)")
	cmd.Flags().BoolVar(&statsFlag, "stats", false, "Add a statistics sheet (xlsx only)")

	return cmd
}

func newDeleteCommand(ctx context.Context, app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <position> [position ...]",
		Short: "Remove records by position.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records := app.Store.All()
			indexes, err := parsePositions(args, len(records))
			if err != nil {
				return err
			}

			marks := selection.New(app.Store)
			for _, i := range indexes {
				marks.Mark(records[i].ID)
			}
			doomed := marks.Marked()

			removed, err := app.Store.RemoveMany(ctx, marks.IDs())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range doomed {
				fmt.Fprintf(out, "Deleted %s %s\n", r.Date, render.Record(r, nil))
			}
			fmt.Fprintf(out, "Removed %d record%s\n", removed, render.Plural(removed))
			return nil
		},
	}
}
