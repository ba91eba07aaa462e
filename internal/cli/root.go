// Package cli holds the questboard command tree.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dukerupert/questboard/internal/catalog"
	"github.com/dukerupert/questboard/internal/config"
	"github.com/dukerupert/questboard/internal/database"
	"github.com/dukerupert/questboard/internal/household"
	"github.com/dukerupert/questboard/internal/logging"
	"github.com/dukerupert/questboard/internal/store"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the questboard command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "questboard",
		Short:         "Household morning quest board",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newStatsCmd(),
		newBackupCmd(),
		newSettingsCmd(),
	)

	return root
}

// env is what every command needs after configuration is read.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
}

func loadEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger := logging.Setup(cfg.LogLevel)

	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &env{cfg: cfg, logger: logger, db: db}, nil
}

// openState builds and opens the household state over the database and workbook.
func (e *env) openState(ctx context.Context, notify household.Notifier) (*household.State, error) {
	state := household.New(e.cfg.Roster, household.Options{
		Persister: store.NewStateStore(e.db),
		Catalog:   catalog.NewWorkbook(e.cfg.WorkbookPath, e.cfg.Roster),
		Notify:    notify,
		Logger:    e.logger.With("component", "household"),
	})
	if err := state.Open(ctx); err != nil {
		return nil, fmt.Errorf("opening state: %w", err)
	}
	return state, nil
}
