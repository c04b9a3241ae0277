package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/maisonvelour/storefront-backend/api/routes"
	"github.com/maisonvelour/storefront-backend/internal/activity"
	"github.com/maisonvelour/storefront-backend/internal/inventory"
	products "github.com/maisonvelour/storefront-backend/internal/products"
	"github.com/maisonvelour/storefront-backend/pkg/auth/session"
	"github.com/maisonvelour/storefront-backend/pkg/config"
	"github.com/maisonvelour/storefront-backend/pkg/db"
	"github.com/maisonvelour/storefront-backend/pkg/events"
	"github.com/maisonvelour/storefront-backend/pkg/logger"
	"github.com/maisonvelour/storefront-backend/pkg/metrics"
	"github.com/maisonvelour/storefront-backend/pkg/migrate"
	"github.com/maisonvelour/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	inventoryMetrics := metrics.NewInventoryMetrics(registry)

	bus := events.NewBus(logg)
	forwarder, err := events.NewRedisForwarder(redisClient, cfg.Events.Channel)
	if err != nil {
		return err
	}
	bus.AddSink(forwarder)
	events.Subscribe(bus, events.InventoryAlerts, func(ctx context.Context, evt events.Event[events.InventoryAlertsPayload]) {
		ctx = logg.WithFields(ctx, map[string]any{
			"event_id": evt.ID,
			"critical": evt.Data.Critical,
			"total":    evt.Data.Total,
		})
		if evt.Data.Critical > 0 {
			logg.Warn(ctx, "inventory.critical_alerts")
			return
		}
		logg.Info(ctx, "inventory.alerts")
	})

	relay, err := events.NewRelay(bus, redisClient, cfg.Events.Channel, logg)
	if err != nil {
		return err
	}
	go func() {
		if err := relay.Run(ctx); err != nil {
			logg.Error(ctx, "event relay stopped", err)
		}
	}()

	inventoryService, err := inventory.NewService(inventory.NewRepository(dbClient.DB()), cfg.Inventory, inventoryMetrics)
	if err != nil {
		return err
	}
	productService, err := products.NewService(products.NewRepository(dbClient.DB()), dbClient, bus, logg)
	if err != nil {
		return err
	}
	activityService, err := activity.NewService(activity.NewRepository(dbClient.DB()))
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			registry,
			inventoryService,
			productService,
			activityService,
		),
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(ctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
