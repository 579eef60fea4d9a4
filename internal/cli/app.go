package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/faizmokh/sugarlog/internal/config"
	"github.com/faizmokh/sugarlog/internal/export"
	"github.com/faizmokh/sugarlog/internal/files"
	"github.com/faizmokh/sugarlog/internal/logging"
	"github.com/faizmokh/sugarlog/internal/metadata"
	"github.com/faizmokh/sugarlog/internal/store"
	"github.com/faizmokh/sugarlog/internal/vision"
)

// App bundles the collaborators shared by every command. The root command
// fills it in once flags are parsed.
type App struct {
	Store    *store.Store
	Resolver *metadata.Resolver
	Exporter *export.Engine
	// Identifier is nil when no vision endpoint is configured.
	Identifier vision.Identifier
	Logger     *zap.Logger
	// ExportDir receives exports written without an explicit path.
	ExportDir string
}

func (a *App) open(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	manager, err := files.NewManager(cfg.Home)
	if err != nil {
		return fmt.Errorf("resolve data directory: %w", err)
	}

	st, err := store.Open(ctx, manager.DataPath(cfg.DataFile), logger)
	if err != nil {
		return err
	}

	a.Store = st
	a.Resolver = metadata.NewResolver(logger)
	a.Exporter = export.NewEngine(logger)
	a.Logger = logger
	a.ExportDir = manager.BasePath()
	if cfg.Vision.Enabled() {
		a.Identifier = vision.NewClient(cfg.Vision.URL, cfg.Vision.APIKey, cfg.Vision.Model, cfg.Vision.Timeout, logger)
	}
	return nil
}

func (a *App) close() {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}
