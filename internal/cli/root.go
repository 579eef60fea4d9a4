package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/sugarlog/internal/config"
	"github.com/faizmokh/sugarlog/internal/ui"
	"github.com/faizmokh/sugarlog/internal/version"
)

// NewRootCommand creates the top-level Cobra command to host subcommands and the review TUI.
func NewRootCommand(ctx context.Context, cfg config.Config) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:     "sugarlog",
		Short:   "Log meals with glucose readings and review or export the history.",
		Version: version.Info(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsStore(cmd) {
				return nil
			}
			return app.open(ctx, cfg)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ui.NewModel(ctx, ui.Options{
				Store:     app.Store,
				Exporter:  app.Exporter,
				ExportDir: app.ExportDir,
			})
			if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.Home, "home", cfg.Home, "Data directory (default: $SUGARLOG_HOME or ~/.sugarlog)")
	flags.StringVar(&cfg.DataFile, "data", cfg.DataFile, "Record file name or absolute path")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")

	cmd.AddCommand(
		newAddCommand(ctx, app),
		newMetaCommand(app),
		newListCommand(app),
		newStatsCommand(app),
		newNamesCommand(app),
		newExportCommand(ctx, app),
		newDeleteCommand(ctx, app),
		newScheduleCommand(ctx, app),
		newVersionCommand(),
	)

	return cmd
}

// annotationSkipStore marks commands that run without opening the data file.
const annotationSkipStore = "sugarlog/skip-store"

// needsStore reports whether cmd reads or writes records. Help, completion
// and commands annotated with annotationSkipStore do not.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationSkipStore]; ok {
			return false
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	cmd := NewRootCommand(ctx, cfg)
	return cmd.ExecuteContext(ctx)
}

// Main is a helper used by cmd/sugarlog/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
