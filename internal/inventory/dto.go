package inventory

import (
	"github.com/maisonvelour/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// TrendParams narrows and tunes a forecast run. Zero values fall back to defaults.
type TrendParams struct {
	Category        string
	DaysToPredict   int
	MinConfidence   *float64
	IncludeProducts []uint
	ExcludeProducts []uint
}

// ProductTrend is the per-product forecast returned to admins.
type ProductTrend struct {
	ProductID             uint                 `json:"productId"`
	Name                  string               `json:"name"`
	Brand                 string               `json:"brand"`
	Category              string               `json:"category"`
	Price                 float64              `json:"price"`
	CurrentStock          int                  `json:"currentStock"`
	SalesVelocity         float64              `json:"salesVelocity"`
	DaysUntilStockout     int                  `json:"daysUntilStockout"`
	RestockRecommendation int                  `json:"restockRecommendation"`
	Confidence            float64              `json:"confidence"`
	Trend                 enums.TrendDirection `json:"trend"`
	SeasonalImpact        float64              `json:"seasonalImpact"`

	unitPrice decimal.Decimal
}

// IsCritical reports whether the product is expected to sell out within two weeks.
func (t ProductTrend) IsCritical() bool {
	return t.DaysUntilStockout < criticalStockoutDays
}

// NeedsAttention reports whether the product belongs in the alert list.
func (t ProductTrend) NeedsAttention() bool {
	return t.IsCritical() ||
		(t.SalesVelocity > decliningVelocity && t.Trend == enums.TrendDeclining) ||
		(t.Trend == enums.TrendRising && t.DaysUntilStockout < risingStockoutDays)
}

// RestockPlan aggregates products that need replenishment.
type RestockPlan struct {
	TotalItems         int            `json:"totalItems"`
	TotalEstimatedCost float64        `json:"totalEstimatedCost"`
	Recommendations    []ProductTrend `json:"recommendations"`
}
