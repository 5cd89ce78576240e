package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stock_dashboard/internal/app/di"
	"stock_dashboard/internal/feature/symbollist/usecase"
	"stock_dashboard/internal/platform/config"
	"stock_dashboard/internal/platform/logger"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:           "ingest",
		Short:         "Refresh catalog quotes from the prediction service",
		Long:          "Runs one quote refresh and exits, or keeps refreshing on ingest.schedule (cron syntax) when it is set.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx)
		},
	}
	root.Flags().StringVar(&cfgFile, "config", "", "path to config file (optional)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, DevMode: cfg.Log.DevMode})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	infra, err := di.OpenInfra(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open infrastructure", zap.Error(err))
		return err
	}
	defer func() { _ = infra.Close() }()

	uc, err := di.NewRefreshUsecase(cfg, infra, log)
	if err != nil {
		return err
	}

	if cfg.Ingest.Schedule == "" {
		return refresh(ctx, uc, cfg.Ingest.Timeout, log)
	}
	return schedule(ctx, uc, cfg.Ingest, log)
}

func refresh(ctx context.Context, uc *usecase.RefreshUsecase, timeout time.Duration, log *zap.Logger) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	n, err := uc.RefreshAll(ctx)
	if err != nil {
		log.Error("quote refresh failed", zap.Int("refreshed", n), zap.Error(err))
		return err
	}
	log.Info("ingest ok", zap.Int("refreshed", n))
	return nil
}

// schedule runs a refresh on every tick of the cron spec until ctx is done.
// Overlapping runs are skipped.
func schedule(ctx context.Context, uc *usecase.RefreshUsecase, cfg config.IngestConfig, log *zap.Logger) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(cfg.Schedule, func() {
		_ = refresh(ctx, uc, cfg.Timeout, log)
	}); err != nil {
		return fmt.Errorf("invalid ingest.schedule %q: %w", cfg.Schedule, err)
	}

	log.Info("quote refresh scheduled", zap.String("schedule", cfg.Schedule))
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	log.Info("scheduler stopped")
	return nil
}
