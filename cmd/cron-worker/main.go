package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/maisonvelour/storefront-backend/internal/activity"
	"github.com/maisonvelour/storefront-backend/internal/cron"
	"github.com/maisonvelour/storefront-backend/internal/inventory"
	"github.com/maisonvelour/storefront-backend/pkg/config"
	"github.com/maisonvelour/storefront-backend/pkg/db"
	"github.com/maisonvelour/storefront-backend/pkg/events"
	"github.com/maisonvelour/storefront-backend/pkg/instance"
	"github.com/maisonvelour/storefront-backend/pkg/logger"
	"github.com/maisonvelour/storefront-backend/pkg/metrics"
	"github.com/maisonvelour/storefront-backend/pkg/migrate"
	"github.com/maisonvelour/storefront-backend/pkg/redis"
)

func main() {
	once := flag.Bool("once", false, "run a single cycle and exit")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg, *once); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(context.Background(), "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(context.Background(), "cron worker shutting down gracefully")
}

func run(cfg *config.Config, logg *logger.Logger, once bool) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("bootstrap database: %w", err)
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return fmt.Errorf("dev migrations: %w", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return fmt.Errorf("bootstrap redis: %w", err)
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	bus := events.NewBus(logg)
	forwarder, err := events.NewRedisForwarder(redisClient, cfg.Events.Channel)
	if err != nil {
		return err
	}
	bus.AddSink(forwarder)

	inventoryMetrics := metrics.NewInventoryMetrics(prometheus.DefaultRegisterer)
	inventoryService, err := inventory.NewService(inventory.NewRepository(dbClient.DB()), cfg.Inventory, inventoryMetrics)
	if err != nil {
		return err
	}

	alertJob, err := cron.NewInventoryAlertJob(cron.InventoryAlertJobParams{
		Logger:  logg,
		Alerts:  inventoryService,
		Bus:     bus,
		Metrics: inventoryMetrics,
	})
	if err != nil {
		return err
	}
	retentionJob, err := cron.NewActivityRetentionJob(cron.ActivityRetentionJobParams{
		Logger:     logg,
		DB:         dbClient,
		Repository: activity.NewRepository(dbClient.DB()),
		Retention:  cfg.Activity.RetentionDays,
	})
	if err != nil {
		return err
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker:"+lockEnv(cfg.App.Env)), 0)
	if err != nil {
		return fmt.Errorf("create cron lock: %w", err)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(alertJob, retentionJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Inventory.AlertScanInterval,
	})
	if err != nil {
		return fmt.Errorf("create cron service: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"worker_id":   instance.ID(),
	})
	logg.Info(ctx, "starting cron worker")

	if once {
		return service.RunOnce(ctx)
	}
	return service.Run(ctx)
}

func lockEnv(env string) string {
	if env == "" {
		return "local"
	}
	return env
}
