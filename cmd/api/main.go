package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sparklerlabs/fireworks-shop-backend/api/controllers"
	"github.com/sparklerlabs/fireworks-shop-backend/api/routes"
	"github.com/sparklerlabs/fireworks-shop-backend/internal/catalogsync"
	ordersvc "github.com/sparklerlabs/fireworks-shop-backend/internal/orders"
	productsvc "github.com/sparklerlabs/fireworks-shop-backend/internal/products"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/config"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/invoices"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/metrics"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/migrate"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/redis"
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

	productsRepo := productsvc.NewRepository(dbClient.DB())
	ordersRepo := ordersvc.NewRepository(dbClient.DB())

	// With an upstream catalog URL the provider mirrors the legacy
	// spreadsheet backend through the redis cache; without one the
	// product table is the catalog.
	var catalog controllers.CatalogProvider
	var productsService productsvc.Service
	if cfg.Catalog.UpstreamURL != "" {
		provider, err := catalogsync.NewProvider(cfg.Catalog, redisClient, redis.IsNil, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create catalog provider", err)
			os.Exit(1)
		}
		catalog = provider
		productsService, err = productsvc.NewService(productsRepo, provider, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create product service", err)
			os.Exit(1)
		}
	} else {
		productsService, err = productsvc.NewService(productsRepo, nil, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create product service", err)
			os.Exit(1)
		}
		local, err := catalogsync.NewLocal(productsService, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create catalog provider", err)
			os.Exit(1)
		}
		catalog = local
	}

	invoiceStore, err := invoices.NewStore(cfg.Invoices, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create invoice store", err)
		os.Exit(1)
	}

	ordersService, err := ordersvc.NewService(ordersRepo, cfg.Shop, ordersvc.NewIDGenerator(redisClient), invoiceStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

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
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Registry:    registry,
			Metrics:     httpMetrics,
			DBPinger:    dbClient,
			RedisPinger: redisClient,
			Catalog:     catalog,
			Products:    productsService,
			Orders:      ordersService,
			InvoiceDir:  invoiceStore.Dir(),
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdown
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
