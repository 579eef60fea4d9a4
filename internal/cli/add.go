package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faizmokh/sugarlog/internal/metadata"
	"github.com/faizmokh/sugarlog/internal/record"
	"github.com/faizmokh/sugarlog/internal/render"
	"github.com/faizmokh/sugarlog/internal/schedule"
	"github.com/faizmokh/sugarlog/internal/vision"
)

func newAddCommand(ctx context.Context, app *App) *cobra.Command {
	var (
		photoFlag    string
		nameFlag     string
		beforeFlag   float64
		afterFlag    float64
		foodsFlag    string
		identifyFlag bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a meal with its glucose readings.",
		Long: "add stores a meal. The date and time come from the photo's capture metadata when available, " +
			"otherwise the current time is used. Foods are given with --foods or identified from the photo with --identify.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var res metadata.Resolution
			if photoFlag != "" {
				res = app.Resolver.Resolve(photoFlag)
			} else {
				res = app.Resolver.Now()
			}

			var foods []string
			switch {
			case strings.TrimSpace(foodsFlag) != "":
				foods = vision.CleanFoods(foodsFlag)
			case identifyFlag:
				if photoFlag == "" {
					return fmt.Errorf("--identify requires --photo")
				}
				if app.Identifier == nil {
					return vision.ErrNotConfigured
				}
				identified, err := app.Identifier.Identify(ctx, photoFlag)
				if err != nil {
					return err
				}
				foods = identified
			}

			name := strings.TrimSpace(nameFlag)
			if name == "" {
				if band, ok := schedule.Match(app.Store.Bands(), res.Time); ok {
					name = band.Name
				}
			}

			candidate := record.Record{
				Date:       res.Date,
				Time:       res.Time,
				Timestamp:  res.Timestamp,
				Name:       name,
				Foods:      foods,
				PhotoPath:  photoFlag,
				DateSource: res.Source,
			}
			if cmd.Flags().Changed("before") {
				candidate.SugarBefore = record.Float(beforeFlag)
			}
			if cmd.Flags().Changed("after") {
				candidate.SugarAfter = record.Float(afterFlag)
			}

			saved, err := app.Store.Append(ctx, candidate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved %s %s\n", saved.Date, render.Record(saved, nil))
			fmt.Fprintf(out, "Date source: %s\n", describeSource(saved.DateSource))
			return nil
		},
	}

	cmd.Flags().StringVar(&photoFlag, "photo", "", "Meal photo; its capture time dates the record")
	cmd.Flags().StringVar(&nameFlag, "name", "", "Meal name (default: the schedule band containing the time)")
	cmd.Flags().Float64Var(&beforeFlag, "before", 0, "Glucose before the meal in mg/dL")
	cmd.Flags().Float64Var(&afterFlag, "after", 0, "Glucose after the meal in mg/dL")
	cmd.Flags().StringVar(&foodsFlag, "foods", "", "Comma-separated foods")
	cmd.Flags().BoolVar(&identifyFlag, "identify", false, "Identify foods from the photo with the vision service")

	return cmd
}

func newMetaCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "meta <photo>",
		Short: "Show the capture time resolved for a photo.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := app.Resolver.Resolve(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", res.Date)
			fmt.Fprintf(out, "Time: %s\n", res.Time)
			fmt.Fprintf(out, "Source: %s\n", describeSource(res.Source))
			return nil
		},
	}
}
