package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sparklerlabs/fireworks-shop-backend/internal/catalogsync"
	"github.com/sparklerlabs/fireworks-shop-backend/internal/cron"
	ordersvc "github.com/sparklerlabs/fireworks-shop-backend/internal/orders"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/config"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/metrics"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/migrate"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/redis"
)

const lockKeyFormat = "fw:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	metricsCollector := metrics.NewJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	registry := cron.NewRegistry()

	invoiceJob, err := cron.NewInvoiceCleanupJob(cron.InvoiceCleanupJobParams{
		Logger: logg,
		Orders: ordersvc.NewRepository(dbClient.DB()),
		Dir:    cfg.Invoices.Dir,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create invoice cleanup job", err)
		os.Exit(1)
	}
	registry.Register(invoiceJob)

	// The refresh job only exists for deployments still mirroring the
	// legacy spreadsheet catalog.
	if cfg.Catalog.UpstreamURL != "" {
		provider, err := catalogsync.NewProvider(cfg.Catalog, redisClient, redis.IsNil, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create catalog provider", err)
			os.Exit(1)
		}
		refreshJob, err := cron.NewCatalogRefreshJob(cron.CatalogRefreshJobParams{
			Logger:  logg,
			Catalog: provider,
		})
		if err != nil {
			logg.Error(context.Background(), "failed to create catalog refresh job", err)
			os.Exit(1)
		}
		registry.Register(refreshJob)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
