package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InventoryMetrics tracks forecast runs and the size of the latest alert scan.
type InventoryMetrics struct {
	forecastDuration *prometheus.HistogramVec
	forecastProducts *prometheus.GaugeVec
	alertsOpen       *prometheus.GaugeVec
	restockUnits     prometheus.Gauge
}

// NewInventoryMetrics registers the inventory metrics on the provided registerer.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "velour_inventory_forecast_duration_seconds",
		Help:    "Duration of inventory forecast computations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	products := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "velour_inventory_forecast_products",
		Help: "Products returned by the most recent forecast per operation.",
	}, []string{"operation"})
	alerts := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "velour_inventory_alerts_open",
		Help: "Inventory alerts found by the latest scan, split by severity.",
	}, []string{"severity"})
	restock := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "velour_inventory_restock_units",
		Help: "Units recommended by the latest restock plan.",
	})
	reg.MustRegister(duration, products, alerts, restock)
	return &InventoryMetrics{
		forecastDuration: duration,
		forecastProducts: products,
		alertsOpen:       alerts,
		restockUnits:     restock,
	}
}

// ObserveForecast records how long an operation took and how many products it returned.
func (m *InventoryMetrics) ObserveForecast(operation string, duration time.Duration, products int) {
	if m == nil || m.forecastDuration == nil {
		return
	}
	label := normalizeLabel(operation)
	m.forecastDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.forecastProducts.WithLabelValues(label).Set(float64(products))
}

// SetAlerts publishes the critical and watch alert counts of the latest scan.
func (m *InventoryMetrics) SetAlerts(critical, watch int) {
	if m == nil || m.alertsOpen == nil {
		return
	}
	m.alertsOpen.WithLabelValues("critical").Set(float64(critical))
	m.alertsOpen.WithLabelValues("watch").Set(float64(watch))
}

// SetRestockUnits publishes the total units of the latest restock plan.
func (m *InventoryMetrics) SetRestockUnits(units int) {
	if m == nil || m.restockUnits == nil {
		return
	}
	m.restockUnits.Set(float64(units))
}
