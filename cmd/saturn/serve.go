package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"dealerscope/saturn/pkg/budget"
	"dealerscope/saturn/pkg/budget/storage"
	"dealerscope/saturn/pkg/catalog"
	"dealerscope/saturn/pkg/cli"
	"dealerscope/saturn/pkg/config"
	"dealerscope/saturn/pkg/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the long-lived hydration service",
	Long: `Run saturn as a long-lived process: the catalog is kept loaded and
optionally reloaded on file change, the budget guard persists spend to
the configured ledger and resets on the configured schedule, and
Prometheus metrics are exposed for scrapers.

The process shuts down cleanly on SIGINT or SIGTERM.

Examples:
  saturn serve --config saturn.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// openLedger builds the configured spend ledger backend.
func openLedger(cfg config.LedgerConfig) (storage.Ledger, error) {
	switch cfg.Backend {
	case "sqlite":
		return storage.NewSQLiteLedgerWithConfig(storage.SQLiteLedgerConfig{
			Path:        cfg.SQLitePath,
			BusyTimeout: cfg.BusyTimeout,
		})
	default:
		return storage.NewMemoryLedger(), nil
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default().With("component", "serve")

	store := catalog.NewStore(cfg.Catalog.DefaultBindings)
	if err := store.LoadFile(cfg.Catalog.Path); err != nil {
		return cli.NewCommandError("serve", fmt.Errorf("loading catalog: %w", err))
	}
	logger.Info("catalog loaded", "path", cfg.Catalog.Path, "templates", store.Current().Len())

	ctx := cli.SetupSignalHandler()

	if cfg.Catalog.Watch {
		watcher, err := catalog.NewWatcher(store, cfg.Catalog.Path, cfg.Catalog.DebounceInterval)
		if err != nil {
			return cli.NewCommandError("serve", fmt.Errorf("starting catalog watcher: %w", err))
		}
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Error("catalog watcher stopped", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	ledger, err := openLedger(cfg.Budget.Ledger)
	if err != nil {
		return cli.NewCommandError("serve", fmt.Errorf("opening ledger: %w", err))
	}
	defer ledger.Close()

	guard := budget.NewGuard(cfg.Budget.CeilingCents,
		budget.WithLedger(ledger),
		budget.WithMetrics(budget.NewMetrics()),
	)

	if cfg.Budget.ResetSchedule != "" {
		scheduler := budget.NewResetScheduler(guard, cfg.Budget.ResetSchedule)
		if err := scheduler.Start(); err != nil {
			return cli.NewCommandError("serve", fmt.Errorf("starting reset scheduler: %w", err))
		}
		defer scheduler.Stop()
	}

	if cfg.Telemetry.Metrics.Enabled {
		metricsSrv := telemetry.NewMetricsServer(cfg.Telemetry.Metrics.ListenAddr, cfg.Telemetry.Metrics.Path)
		metricsSrv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsSrv.Stop(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown", "error", err)
			}
		}()
	}

	logger.Info("service running",
		"ceiling_cents", guard.Ceiling(),
		"ledger_backend", cfg.Budget.Ledger.Backend,
		"watch", cfg.Catalog.Watch,
	)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}
