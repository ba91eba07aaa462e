package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/questboard/internal/schedule"
	"github.com/dukerupert/questboard/internal/server"
	ws "github.com/dukerupert/questboard/internal/websocket"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the board's HTTP and websocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	e, err := loadEnv(ctx)
	if err != nil {
		return err
	}
	defer e.db.Close()

	hub := ws.NewHub(e.logger.With("component", "websocket"))
	state, err := e.openState(ctx, hub.Notify)
	if err != nil {
		return err
	}

	pollLogger := e.logger.With("component", "poller")
	poller := schedule.NewPoller(e.cfg.PollInterval, func(now time.Time) {
		if err := state.Tick(ctx, now); err != nil {
			pollLogger.Warn("tick failed", "error", err)
		}
	})
	poller.Start(ctx)
	defer poller.Stop()

	srv := server.New(e.db, state, hub, e.cfg.BackupDir, e.logger)
	httpServer := &http.Server{
		Addr:         e.cfg.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.logger.Info("questboard running", "addr", httpServer.Addr, "participants", state.Roster(), "mode", state.Mode())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	e.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
