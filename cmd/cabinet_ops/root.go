package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/cabinet_contabil_app/internal/core/ports/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/core/services"
	"github.com/SscSPs/cabinet_contabil_app/internal/middleware"
	"github.com/SscSPs/cabinet_contabil_app/internal/platform/config"
	"github.com/SscSPs/cabinet_contabil_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/cabinet_contabil_app/pkg/database"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand, filled in by the root pre-run.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "cabinet_ops",
		Short: "Operator tasks for the cabinet contabil backend",
		Long: `cabinet_ops runs database migrations, seeds rules and the admin account,
and triggers the task generators from a shell or a scheduler.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
			slog.SetDefault(a.logger)
			cmd.SetContext(middleware.WithLogger(cmd.Context(), a.logger))
			return nil
		},
	}

	cmd.AddCommand(
		newMigrateCmd(a),
		newSeedCmd(a),
		newGenerateCmd(a),
	)
	return cmd
}

// openServices opens a pool and wires the service container over it. The returned
// func closes the pool.
func (a *app) openServices(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
	pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL, true)
	if err != nil {
		return nil, nil, err
	}
	container := services.NewServiceContainer(pgsql.NewRepositoryProvider(pool), nil)
	return container, func() { database.ClosePgxPool(pool) }, nil
}
