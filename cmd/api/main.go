package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/brewplanhq/brewplan-backend/api/controllers"
	"github.com/brewplanhq/brewplan-backend/api/routes"
	"github.com/brewplanhq/brewplan-backend/internal/forecast"
	"github.com/brewplanhq/brewplan-backend/internal/orders"
	"github.com/brewplanhq/brewplan-backend/internal/predict"
	"github.com/brewplanhq/brewplan-backend/pkg/config"
	"github.com/brewplanhq/brewplan-backend/pkg/db"
	"github.com/brewplanhq/brewplan-backend/pkg/logger"
	"github.com/brewplanhq/brewplan-backend/pkg/metrics"
	"github.com/brewplanhq/brewplan-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	// The recommendation pipeline itself has no database dependency; the
	// connection only backs the readiness probe when a DSN is configured.
	var dbPinger controllers.Pinger
	if cfg.DB.DSN != "" {
		dbClient, err := db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()
		if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
			logg.Error(context.Background(), "failed to run dev migrations", err)
			os.Exit(1)
		}
		dbPinger = dbClient
	}

	registry, err := predict.LoadRegistry(cfg.Models.Dir, cfg.Models.Items)
	if err != nil {
		logg.Error(context.Background(), "failed to load model registry", err)
		os.Exit(1)
	}
	reportRegistry(logg, registry)

	pipelineMetrics := metrics.NewPipelineMetrics(prometheus.DefaultRegisterer)
	ordersSvc := buildOrdersService(logg, cfg, registry, pipelineMetrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbPinger, registry, ordersSvc),
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-signalCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}

// buildOrdersService assembles the pipeline. If the weather client or the
// enricher cannot be built, the API still boots and every recommendation
// request fails with the startup error.
func buildOrdersService(
	logg *logger.Logger,
	cfg *config.Config,
	registry *predict.Registry,
	pipelineMetrics *metrics.PipelineMetrics,
) orders.Service {
	ctx := context.Background()

	source, err := forecast.NewClient(cfg.Weather)
	if err != nil {
		logg.Error(ctx, "weather client unavailable; recommendation requests will fail", err)
		return orders.Unavailable(err)
	}

	enricher, err := predict.NewEnricher(predict.EnricherParams{
		Registry:           registry,
		Logger:             logg,
		Metrics:            pipelineMetrics,
		FallbackVisitors:   cfg.Models.FallbackVisitors,
		FallbackTotalUnits: cfg.Models.FallbackTotalUnits,
	})
	if err != nil {
		logg.Error(ctx, "prediction unavailable; recommendation requests will fail", err)
		return orders.Unavailable(err)
	}

	svc, err := orders.NewService(orders.ServiceParams{
		Source:   source,
		Enricher: enricher,
		ItemIDs:  registry.ItemIDs(),
		Ordering: cfg.Ordering,
		Logger:   logg,
		Metrics:  pipelineMetrics,
	})
	if err != nil {
		logg.Error(ctx, "failed to build recommendation service", err)
		os.Exit(1)
	}
	return svc
}

func reportRegistry(logg *logger.Logger, registry *predict.Registry) {
	ctx := logg.WithFields(context.Background(), map[string]any{
		"item_models": registry.ItemModelCount(),
		"items":       registry.ItemIDs(),
	})
	if err := registry.Err(); err != nil {
		logg.Error(ctx, "some model artifacts failed to load", err)
	}
	if unknown := registry.Unknown(); len(unknown) > 0 {
		ctx = logg.WithField(ctx, "unknown_artifacts", unknown)
		logg.Warn(ctx, "model directory contains unrecognized artifacts")
	}
	logg.Info(ctx, "model registry loaded")
}
