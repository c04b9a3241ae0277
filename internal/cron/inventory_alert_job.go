package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/maisonvelour/storefront-backend/internal/inventory"
	"github.com/maisonvelour/storefront-backend/pkg/events"
	"github.com/maisonvelour/storefront-backend/pkg/logger"
	"github.com/maisonvelour/storefront-backend/pkg/metrics"
)

type alertSource interface {
	InventoryAlerts(ctx context.Context) ([]inventory.ProductTrend, error)
}

// InventoryAlertJobParams configure the inventory alert scan.
type InventoryAlertJobParams struct {
	Logger   *logger.Logger
	Alerts   alertSource
	Bus      *events.Bus
	Metrics  *metrics.InventoryMetrics
	MaxItems int
}

const defaultAlertEventItems = 50

// NewInventoryAlertJob builds the job that scans for stock alerts and broadcasts them.
func NewInventoryAlertJob(params InventoryAlertJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Alerts == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if params.Bus == nil {
		return nil, fmt.Errorf("event bus required")
	}
	maxItems := params.MaxItems
	if maxItems <= 0 {
		maxItems = defaultAlertEventItems
	}
	return &inventoryAlertJob{
		logg:     params.Logger,
		alerts:   params.Alerts,
		bus:      params.Bus,
		metrics:  params.Metrics,
		maxItems: maxItems,
		now:      time.Now,
	}, nil
}

type inventoryAlertJob struct {
	logg     *logger.Logger
	alerts   alertSource
	bus      *events.Bus
	metrics  *metrics.InventoryMetrics
	maxItems int
	now      func() time.Time
}

func (j *inventoryAlertJob) Name() string { return "inventory-alerts" }

func (j *inventoryAlertJob) Run(ctx context.Context) error {
	alerts, err := j.alerts.InventoryAlerts(ctx)
	if err != nil {
		return fmt.Errorf("inventory alerts: %w", err)
	}

	critical := 0
	for _, alert := range alerts {
		if alert.IsCritical() {
			critical++
		}
	}
	j.metrics.SetAlerts(critical, len(alerts)-critical)

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"alerts":   len(alerts),
		"critical": critical,
	})
	if len(alerts) == 0 {
		j.logg.Info(logCtx, "inventory scan found no alerts")
		return nil
	}

	items := alerts
	if len(items) > j.maxItems {
		items = items[:j.maxItems]
	}
	payload := events.InventoryAlertsPayload{
		GeneratedAt: j.now().UTC(),
		Critical:    critical,
		Total:       len(alerts),
		Items:       make([]events.AlertEventItem, 0, len(items)),
	}
	for _, alert := range items {
		payload.Items = append(payload.Items, events.AlertEventItem{
			ProductID:             alert.ProductID,
			Name:                  alert.Name,
			DaysUntilStockout:     alert.DaysUntilStockout,
			Trend:                 alert.Trend.String(),
			SalesVelocity:         alert.SalesVelocity,
			RestockRecommendation: alert.RestockRecommendation,
		})
	}

	if err := events.Publish(ctx, j.bus, events.InventoryAlerts, nil, payload); err != nil {
		return fmt.Errorf("publish inventory alerts: %w", err)
	}
	j.logg.Info(logCtx, "inventory alerts published")
	return nil
}
