package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v3"
	"github.com/verteidiq/assessor/pkg/cli/config"
	httpctrl "github.com/verteidiq/assessor/pkg/controller/http"
	"github.com/verteidiq/assessor/pkg/service/analytics"
	"github.com/verteidiq/assessor/pkg/service/content"
	"github.com/verteidiq/assessor/pkg/service/demo"
	"github.com/verteidiq/assessor/pkg/usecase"
	"github.com/verteidiq/assessor/pkg/utils/async"
	"github.com/verteidiq/assessor/pkg/utils/logging"
	"github.com/verteidiq/assessor/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var demoInterval time.Duration
	var catalogCfg config.Catalog
	var repoCfg config.Repository
	var leadCfg config.Lead
	var slackCfg config.Slack
	var reportCfg config.Report

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ASSESSOR_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "demo-interval",
			Usage:       "Tick interval of the live demo feed (0 disables the feed)",
			Value:       time.Second,
			Sources:     cli.EnvVars("ASSESSOR_DEMO_INTERVAL"),
			Destination: &demoInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, leadCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, reportCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load question catalog")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			ucOpts := []usecase.Option{
				usecase.WithEventTracker(analytics.New(registry)),
				usecase.WithStepTimeout(leadCfg.StepTimeout()),
			}

			analyzer, err := leadCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure domain analysis")
			}
			ucOpts = append(ucOpts, usecase.WithDomainAnalyzer(analyzer))

			notifier, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack")
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithLeadNotifier(notifier))
				logger.Info("Slack lead notification enabled")
			} else {
				logger.Info("Slack not configured, lead notification disabled")
			}

			store, err := reportCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure report export")
			}
			if store != nil {
				defer safe.Close(ctx, store)
				ucOpts = append(ucOpts, usecase.WithReportStore(store))
				logger.Info("Report export enabled", "report", reportCfg)
			}

			// Deferred after the store so that report uploads and lead
			// notifications finish before it is closed
			defer func() {
				drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := async.Wait(drainCtx); err != nil {
					logger.Warn("background work still running at exit", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, content.New(catalog), ucOpts...)

			httpOpts := []httpctrl.Options{
				httpctrl.WithMetrics(registry),
			}

			var simulator *demo.Simulator
			if demoInterval > 0 {
				simulator = demo.NewSimulator(demo.RandomSampler{}, demo.WithInterval(demoInterval))
				if err := simulator.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start demo simulator")
				}
				httpOpts = append(httpOpts, httpctrl.WithDemoFeed(simulator))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr, "repository", repoCfg, "lead", leadCfg)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logger.Info("Context canceled, shutting down")
			case sig := <-sigCh:
				logger.Info("Received shutdown signal", "signal", sig)
			}

			if simulator != nil {
				simulator.Stop()
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown completed")
			return nil
		},
	}
}
