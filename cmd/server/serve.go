package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ballotdesk/internal/config"
	"github.com/rpggio/ballotdesk/internal/domain/activity"
	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/domain/corporation"
	"github.com/rpggio/ballotdesk/internal/domain/preference"
	"github.com/rpggio/ballotdesk/internal/domain/reminder"
	"github.com/rpggio/ballotdesk/internal/domain/wizard"
	"github.com/rpggio/ballotdesk/internal/mcp"
	"github.com/rpggio/ballotdesk/internal/notify"
	"github.com/rpggio/ballotdesk/internal/sqlite"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: `Run the ballot portal as an MCP server.

Ballots live in the configured database (in memory by default). The theme
preference is kept in the durable preferences database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg
			if transport != "" {
				cfg.Transport.Mode = transport
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "transport mode (stdio|http), overrides BALLOTDESK_TRANSPORT_MODE")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, stderrOrStdout(cfg.Transport.Mode))
	if err != nil {
		return err
	}
	defer closeLog()

	app, err := openApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		return err
	}
	defer app.Close()

	server := mcp.NewServer(mcp.Config{
		Services: app.services,
		Version:  version,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Transport.Mode == config.TransportStdio {
		return runStdioMode(ctx, logger, server)
	}
	return runHTTPMode(ctx, logger, server, cfg.Server.Host, cfg.Server.Port)
}

// app owns the databases and services of a running portal.
type app struct {
	ballotsDB *sqlite.DB
	prefsDB   *sqlite.DB
	toasts    *notify.Toasts
	services  mcp.Services
}

func openApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	registry, err := corporation.NewRegistry(cfg.Portal.Corporations, cfg.Portal.DefaultCorporation)
	if err != nil {
		return nil, err
	}

	ballotsDB, err := openDB(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("ballot database: %w", err)
	}
	prefsDB, err := openDB(cfg.Preferences.Path)
	if err != nil {
		_ = ballotsDB.Close()
		return nil, fmt.Errorf("preferences database: %w", err)
	}

	activityRepo := sqlite.NewActivityRepository(ballotsDB)
	toasts := notify.NewToasts(cfg.Notify.ToastDuration)

	activitySvc := activity.NewService(activityRepo, logger)
	ballotSvc := ballot.NewService(sqlite.NewBallotRepository(ballotsDB), activityRepo, registry, logger)
	wizardSvc := wizard.NewService(ballotSvc, activityRepo, registry.Default(), logger)
	outbox := notify.NewOutbox(activityRepo, toasts, logger)
	reminderSvc := reminder.NewService(ballotSvc, reminder.NewComposer(cfg.Portal.BaseURL), outbox, logger)
	preferenceSvc := preference.NewService(sqlite.NewPreferenceRepository(prefsDB), logger)

	a := &app{
		ballotsDB: ballotsDB,
		prefsDB:   prefsDB,
		toasts:    toasts,
		services: mcp.Services{
			Corporations: registry,
			Ballots:      ballotSvc,
			Wizard:       wizardSvc,
			Reminders:    reminderSvc,
			Preferences:  preferenceSvc,
			Activity:     activitySvc,
			Toasts:       toasts,
		},
	}

	if cfg.Portal.SeedDemo {
		existing, err := ballotSvc.List(ctx)
		if err != nil {
			a.Close()
			return nil, err
		}
		if len(existing) == 0 {
			if err := ballotSvc.Seed(ctx, ballot.DemoBallots()); err != nil {
				a.Close()
				return nil, err
			}
			logger.Info("seeded demo ballots", "count", len(ballot.DemoBallots()))
		}
	}

	return a, nil
}

// Close stops pending toast timers and closes both databases.
func (a *app) Close() {
	a.toasts.Close()
	_ = a.ballotsDB.Close()
	_ = a.prefsDB.Close()
}

// openDB opens a database and applies the schema.
func openDB(path string) (*sqlite.DB, error) {
	if err := ensureParentDir(path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func runStdioMode(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or the context is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mcp.NewHTTPHandler(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
