// Package cli implements the bookworm command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/bookwormapp/bookworm-server/internal/config"
	"github.com/bookwormapp/bookworm-server/internal/di"
	"github.com/bookwormapp/bookworm-server/internal/di/providers"
	"github.com/bookwormapp/bookworm-server/internal/logger"
)

// Run builds the command tree and executes it.
func Run() error {
	ctx := context.Background()

	var ov config.Overrides

	cmd := &cobra.Command{
		Use:           "bookworm",
		Short:         "Manage a personal book catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&ov.DatabasePath, "db", "", "path to the catalog database file")
	flags.StringVar(&ov.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&ov.LogFormat, "log-format", "", "log format (text, json)")
	flags.StringVar(&ov.ExportDir, "export-dir", "", "directory for database exports")
	flags.StringVar(&ov.EnvFile, "env-file", "", "path to a .env file to load")

	cmd.AddCommand(
		addCommand(ctx, &ov),
		listCommand(ctx, &ov),
		showCommand(ctx, &ov),
		removeCommand(ctx, &ov),
		authorsCommand(ctx, &ov),
		exportCommand(ctx, &ov),
		purgeCommand(ctx, &ov),
	)

	return cmd.Execute()
}

// app bundles the container-managed dependencies a command needs.
type app struct {
	injector *do.RootScope
	config   *config.Config
	logger   *logger.Logger
	store    *providers.StoreHandle
}

// newApp builds the DI container from the parsed flag overrides. The caller
// must close the returned app when done.
func newApp(ov *config.Overrides) (*app, error) {
	injector := di.NewContainer(*ov)

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		return nil, err
	}
	storeHandle, err := do.Invoke[*providers.StoreHandle](injector)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &app{
		injector: injector,
		config:   cfg,
		logger:   log,
		store:    storeHandle,
	}, nil
}

func (a *app) close() {
	if err := di.Shutdown(a.injector); err != nil {
		a.logger.Error("shutdown error", "error", err)
	}
}
