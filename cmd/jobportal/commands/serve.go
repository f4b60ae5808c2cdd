package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/careercode/jobportal/config"
	"github.com/careercode/jobportal/data"
	"github.com/careercode/jobportal/handler"
	"github.com/careercode/jobportal/internal/server"
	"github.com/careercode/jobportal/logging/logger"
	"github.com/careercode/jobportal/logging/observes"
	"github.com/careercode/jobportal/metrics"
	"github.com/careercode/jobportal/middleware"
	"github.com/careercode/jobportal/service"
	"github.com/careercode/jobportal/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// NewServeCommand creates the serve command
func NewServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configFile)
		},
	}
}

func runServe(parent context.Context, configFile string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanup, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer cleanup()

	info := version.GetVersionInfo()
	logger.SetVersion(info.Version)
	cfg.Watch(logger.StdLogger().SetLevelFromConfig)

	flush, err := observes.NewSentry(&observes.SentryOptions{
		Dsn:         cfg.Observes.Sentry.Endpoint,
		Name:        cfg.AppName,
		Release:     releaseOr(cfg.Observes.Sentry.Release, info.Version),
		Environment: cfg.Observes.Sentry.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to init sentry: %w", err)
	}
	defer flush()

	if t := cfg.Observes.Tracer; t.Endpoint != "" {
		shutdown, err := observes.NewTracer(&observes.TracerOption{
			URL:                t.Endpoint,
			Name:               cfg.AppName,
			Version:            info.Version,
			Branch:             info.Branch,
			Revision:           info.Revision,
			Environment:        t.Environment,
			SamplingRate:       t.SamplingRate,
			BatchTimeout:       t.BatchTimeout,
			ExportTimeout:      t.ExportTimeout,
			MaxExportBatchSize: t.MaxExportBatchSize,
		})
		if err != nil {
			return fmt.Errorf("failed to init tracer: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warnf(context.Background(), "tracer shutdown: %v", err)
			}
		}()
	}

	var collector metrics.Collector = metrics.NoOpCollector{}
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		collector = metrics.NewPrometheusCollector(reg, cfg.Metrics.Namespace)
		gatherer = reg
	}

	d, err := data.New(ctx, cfg.Data.MongoDB, collector)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(context.Background()); err != nil {
			logger.Warnf(context.Background(), "failed to disconnect MongoDB: %v", err)
		}
	}()

	verifier, err := server.NewVerifier(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create identity verifier: %w", err)
	}

	svc := service.New(d.JobRepo, d.ApplicationRepo, cfg.Application)
	srv, err := server.New(cfg,
		handler.NewHandler(svc.Job, svc.Application),
		middleware.New(verifier, collector),
		d, gatherer)
	if err != nil {
		return err
	}

	logger.Infof(ctx, "starting %s %s with %s identity provider", cfg.AppName, info.Version, cfg.Auth.Provider)
	if err := srv.Run(ctx); err != nil {
		return err
	}
	logger.Info(context.Background(), "server exited")
	return nil
}

func releaseOr(release, fallback string) string {
	if release != "" {
		return release
	}
	return fallback
}
