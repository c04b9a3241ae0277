package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestInventoryMetricsExportsGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewInventoryMetrics(reg)
	metrics.ObserveForecast("trends", 40*time.Millisecond, 12)
	metrics.SetAlerts(3, 5)
	metrics.SetRestockUnits(87)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchGaugeValue(mfs, "velour_inventory_forecast_products", "operation", "trends"); err != nil {
		t.Fatalf("fetch products: %v", err)
	} else if got != 12 {
		t.Fatalf("expected products=12, got %f", got)
	}
	if got, err := fetchGaugeValue(mfs, "velour_inventory_alerts_open", "severity", "critical"); err != nil {
		t.Fatalf("fetch critical: %v", err)
	} else if got != 3 {
		t.Fatalf("expected critical=3, got %f", got)
	}
	if got, err := fetchGaugeValue(mfs, "velour_inventory_alerts_open", "severity", "watch"); err != nil {
		t.Fatalf("fetch watch: %v", err)
	} else if got != 5 {
		t.Fatalf("expected watch=5, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "velour_inventory_forecast_duration_seconds", "operation", "trends"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}

	mf := findMetricFamily(mfs, "velour_inventory_restock_units")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatal("restock units gauge missing")
	}
	if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 87 {
		t.Fatalf("expected restock units 87, got %f", got)
	}
}

func TestInventoryMetricsNilSafe(t *testing.T) {
	var metrics *InventoryMetrics
	metrics.ObserveForecast("trends", time.Second, 1)
	metrics.SetAlerts(1, 1)
	metrics.SetRestockUnits(1)

	unregistered := NewInventoryMetrics(nil)
	unregistered.ObserveForecast("trends", time.Second, 1)
	unregistered.SetAlerts(1, 1)
	unregistered.SetRestockUnits(1)
}

func fetchGaugeValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetGauge().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("gauge %q missing label %s=%s", name, label, value)
}
