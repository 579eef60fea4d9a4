package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/sugarlog/internal/schedule"
)

func newScheduleCommand(ctx context.Context, app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage the named time bands used to label meals.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the configured bands.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				printBands(cmd, app.Store.Bands())
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <name> <start> <end>",
			Short: "Add a band or replace the band with the same name.",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				band := schedule.Band{Name: args[0], Start: args[1], End: args[2]}
				return saveBands(ctx, cmd, app, schedule.Upsert(app.Store.Bands(), band))
			},
		},
		&cobra.Command{
			Use:   "rm <name>",
			Short: "Remove a band.",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				bands, ok := schedule.Remove(app.Store.Bands(), args[0])
				if !ok {
					return fmt.Errorf("band %q not found", schedule.NormalizeName(args[0]))
				}
				return saveBands(ctx, cmd, app, bands)
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default bands.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Store.ResetBands(ctx); err != nil {
					return err
				}
				printBands(cmd, app.Store.Bands())
				return nil
			},
		},
	)

	return cmd
}

func saveBands(ctx context.Context, cmd *cobra.Command, app *App, bands []schedule.Band) error {
	report, err := app.Store.SaveBands(ctx, bands)
	if err != nil {
		return err
	}
	printBands(cmd, report.Bands)
	for _, overlap := range report.Overlaps {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", overlap)
	}
	return nil
}

func printBands(cmd *cobra.Command, bands []schedule.Band) {
	out := cmd.OutOrStdout()
	if len(bands) == 0 {
		fmt.Fprintln(out, "(no bands)")
		return
	}
	for _, b := range bands {
		fmt.Fprintf(out, "%-12s %s-%s\n", b.Name, b.Start, b.End)
	}
}
