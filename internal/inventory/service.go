package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/maisonvelour/storefront-backend/pkg/config"
	pkgerrors "github.com/maisonvelour/storefront-backend/pkg/errors"
	"github.com/maisonvelour/storefront-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Service forecasts stock depletion and restock needs from recent sales.
type Service interface {
	// PredictInventoryTrends returns per-product forecasts ordered by urgency.
	PredictInventoryTrends(ctx context.Context, params TrendParams) ([]ProductTrend, error)
	// InventoryAlerts returns the products that need admin attention.
	InventoryAlerts(ctx context.Context) ([]ProductTrend, error)
	// RestockPlan returns the products to reorder with totals.
	RestockPlan(ctx context.Context) (*RestockPlan, error)
}

type service struct {
	repo          Repository
	unitCostRatio decimal.Decimal
	metrics       *metrics.InventoryMetrics
	now           func() time.Time
}

// NewService builds the forecasting service.
func NewService(repo Repository, cfg config.InventoryConfig, m *metrics.InventoryMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if cfg.UnitCostRatio <= 0 || cfg.UnitCostRatio > 1 {
		return nil, fmt.Errorf("unit cost ratio must be in (0, 1], got %v", cfg.UnitCostRatio)
	}
	return &service{
		repo:          repo,
		unitCostRatio: decimal.NewFromFloat(cfg.UnitCostRatio),
		metrics:       m,
		now:           time.Now,
	}, nil
}

func (s *service) PredictInventoryTrends(ctx context.Context, params TrendParams) ([]ProductTrend, error) {
	started := time.Now()
	trends, err := s.predict(ctx, params)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveForecast("trends", time.Since(started), len(trends))
	return trends, nil
}

func (s *service) predict(ctx context.Context, params TrendParams) ([]ProductTrend, error) {
	now := s.now().UTC()

	products, err := s.repo.ListProducts(ctx, params.Category)
	if err != nil {
		return nil, pkgerrors.Wrapf(pkgerrors.CodeInternal, err, "failed to predict inventory trends")
	}
	sales, err := s.repo.ListSalesBetween(ctx, now.Add(-windowDays*day), now)
	if err != nil {
		return nil, pkgerrors.Wrapf(pkgerrors.CodeInternal, err, "failed to predict inventory trends")
	}

	daysToPredict := params.DaysToPredict
	if daysToPredict <= 0 {
		daysToPredict = defaultDaysToPredict
	}
	minConfidence := defaultMinConfidence
	if params.MinConfidence != nil {
		minConfidence = *params.MinConfidence
	}
	include := idSet(params.IncludeProducts)
	exclude := idSet(params.ExcludeProducts)

	buckets := salesBuckets(now, sales)
	trends := make([]ProductTrend, 0, len(products))
	for _, product := range products {
		if include != nil && !include[product.ID] {
			continue
		}
		if exclude[product.ID] {
			continue
		}

		weekly := buckets[product.ID]
		if weekly == nil {
			weekly = make([]int, bucketCount)
		}
		total, nonEmpty := 0, 0
		for _, units := range weekly {
			total += units
			if units > 0 {
				nonEmpty++
			}
		}

		avgDailySales := float64(total) / windowDays
		impact := seasonalImpact(product.Category, now)
		stock := product.TotalStock()
		confidence := confidenceScore(total, nonEmpty, avgDailySales, impact)
		if confidence < minConfidence {
			continue
		}

		trends = append(trends, ProductTrend{
			ProductID:             product.ID,
			Name:                  product.Name,
			Brand:                 product.Brand,
			Category:              product.Category,
			Price:                 product.Price.InexactFloat64(),
			CurrentStock:          stock,
			SalesVelocity:         avgDailySales,
			DaysUntilStockout:     daysUntilStockout(stock, avgDailySales),
			RestockRecommendation: restockRecommendation(avgDailySales, impact, daysToPredict, stock),
			Confidence:            confidence,
			Trend:                 classifyTrend(weekly),
			SeasonalImpact:        impact,
			unitPrice:             product.Price,
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		if trends[i].DaysUntilStockout != trends[j].DaysUntilStockout {
			return trends[i].DaysUntilStockout < trends[j].DaysUntilStockout
		}
		return trends[i].Confidence > trends[j].Confidence
	})
	return trends, nil
}

func (s *service) InventoryAlerts(ctx context.Context) ([]ProductTrend, error) {
	started := time.Now()
	minConfidence := alertMinConfidence
	trends, err := s.predict(ctx, TrendParams{MinConfidence: &minConfidence})
	if err != nil {
		return nil, err
	}

	alerts := make([]ProductTrend, 0, len(trends))
	for _, trend := range trends {
		if trend.NeedsAttention() {
			alerts = append(alerts, trend)
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.IsCritical() != b.IsCritical() {
			return a.IsCritical()
		}
		if a.IsCritical() {
			return a.DaysUntilStockout < b.DaysUntilStockout
		}
		return a.SalesVelocity*a.Confidence > b.SalesVelocity*b.Confidence
	})

	s.metrics.ObserveForecast("alerts", time.Since(started), len(alerts))
	return alerts, nil
}

func (s *service) RestockPlan(ctx context.Context) (*RestockPlan, error) {
	started := time.Now()
	minConfidence := planMinConfidence
	trends, err := s.predict(ctx, TrendParams{DaysToPredict: planDaysToPredict, MinConfidence: &minConfidence})
	if err != nil {
		return nil, err
	}

	plan := &RestockPlan{Recommendations: make([]ProductTrend, 0, len(trends))}
	cost := decimal.Zero
	for _, trend := range trends {
		if trend.RestockRecommendation <= 0 {
			continue
		}
		plan.Recommendations = append(plan.Recommendations, trend)
		plan.TotalItems += trend.RestockRecommendation
		unitCost := trend.unitPrice.Mul(s.unitCostRatio)
		cost = cost.Add(unitCost.Mul(decimal.NewFromInt(int64(trend.RestockRecommendation))))
	}
	sort.SliceStable(plan.Recommendations, func(i, j int) bool {
		return plan.Recommendations[i].RestockRecommendation > plan.Recommendations[j].RestockRecommendation
	})
	plan.TotalEstimatedCost = cost.Round(2).InexactFloat64()

	s.metrics.ObserveForecast("restock_plan", time.Since(started), len(plan.Recommendations))
	s.metrics.SetRestockUnits(plan.TotalItems)
	return plan, nil
}

func idSet(ids []uint) map[uint]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
