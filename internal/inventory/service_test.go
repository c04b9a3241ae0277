package inventory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/maisonvelour/storefront-backend/pkg/config"
	"github.com/maisonvelour/storefront-backend/pkg/db/models"
	"github.com/maisonvelour/storefront-backend/pkg/enums"
	pkgerrors "github.com/maisonvelour/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	products     []models.Product
	sales        []SaleRecord
	productsErr  error
	salesErr     error
	lastCategory string
	lastStart    time.Time
	lastEnd      time.Time
}

func (f *fakeRepo) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	f.lastCategory = category
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return f.products, nil
}

func (f *fakeRepo) ListSalesBetween(ctx context.Context, start, end time.Time) ([]SaleRecord, error) {
	f.lastStart, f.lastEnd = start, end
	if f.salesErr != nil {
		return nil, f.salesErr
	}
	return f.sales, nil
}

var winterNow = time.Date(2026, time.December, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, now time.Time) *service {
	return &service{
		repo:          repo,
		unitCostRatio: decimal.NewFromFloat(0.6),
		now:           func() time.Time { return now },
	}
}

func testProduct(id uint, category string, quantity, storeQuantity int, price string) models.Product {
	return models.Product{
		ID:            id,
		Name:          "Product",
		Brand:         "Maison",
		Category:      category,
		Price:         decimal.RequireFromString(price),
		Quantity:      quantity,
		StoreQuantity: storeQuantity,
	}
}

// weeklySales places each bucket's units on the second day of that week.
func weeklySales(now time.Time, productID uint, perWeek ...int) []SaleRecord {
	start := now.Add(-windowDays * day)
	out := make([]SaleRecord, 0, len(perWeek))
	for week, units := range perWeek {
		if units == 0 {
			continue
		}
		out = append(out, SaleRecord{
			ProductID: productID,
			Quantity:  units,
			CreatedAt: start.Add(time.Duration(week*bucketDays+1)*day + 12*time.Hour),
		})
	}
	return out
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// catalogFixture builds a catalog whose forecasts are worked out by hand:
//
//	10 critical  days 7   conf 0.92 rec 63  stable
//	11 declining days 78  conf 0.98 rec 0
//	12 rising    days 25  conf 0.74 rec 20
//	13 healthy   days 231 conf 0.58 rec 0
//	14 no sales           conf 0.12
//	15 critical  days 2   conf 0.98 rec 141 stable
func catalogFixture(now time.Time) *fakeRepo {
	repo := &fakeRepo{
		products: []models.Product{
			testProduct(10, "jewelry", 6, 4, "100.00"),
			testProduct(11, "jewelry", 150, 50, "80.00"),
			testProduct(12, "jewelry", 20, 0, "250.50"),
			testProduct(13, "jewelry", 60, 40, "40.00"),
			testProduct(14, "jewelry", 3, 0, "10.00"),
			testProduct(15, "jewelry", 5, 0, "1200.00"),
		},
	}
	repo.sales = append(repo.sales, weeklySales(now, 10, repeat(10, 13)...)...)
	repo.sales = append(repo.sales, weeklySales(now, 11, append(repeat(20, 10), 15, 10, 5)...)...)
	repo.sales = append(repo.sales, weeklySales(now, 12, append(repeat(5, 10), 6, 7, 8)...)...)
	repo.sales = append(repo.sales, weeklySales(now, 13, repeat(3, 13)...)...)
	repo.sales = append(repo.sales, weeklySales(now, 15, repeat(20, 13)...)...)
	return repo
}

func ids(trends []ProductTrend) []uint {
	out := make([]uint, len(trends))
	for i, t := range trends {
		out[i] = t.ProductID
	}
	return out
}

func byID(trends []ProductTrend) map[uint]ProductTrend {
	out := make(map[uint]ProductTrend, len(trends))
	for _, t := range trends {
		out[t.ProductID] = t
	}
	return out
}

func floatPtr(v float64) *float64 { return &v }

func TestNewServiceValidates(t *testing.T) {
	_, err := NewService(nil, config.InventoryConfig{UnitCostRatio: 0.6}, nil)
	assert.Error(t, err)

	_, err = NewService(&fakeRepo{}, config.InventoryConfig{UnitCostRatio: 0}, nil)
	assert.Error(t, err)

	svc, err := NewService(&fakeRepo{}, config.InventoryConfig{UnitCostRatio: 0.6}, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestPredictInventoryTrendsComputesForecast(t *testing.T) {
	repo := catalogFixture(winterNow)
	svc := newTestService(repo, winterNow)

	trends, err := svc.PredictInventoryTrends(context.Background(), TrendParams{Category: "Jewelry"})
	require.NoError(t, err)

	assert.Equal(t, "Jewelry", repo.lastCategory)
	assert.Equal(t, winterNow.Add(-windowDays*day), repo.lastStart)
	assert.Equal(t, winterNow, repo.lastEnd)

	assert.Equal(t, []uint{15, 10, 12, 11, 13}, ids(trends))

	got := byID(trends)
	critical := got[10]
	assert.Equal(t, 10, critical.CurrentStock)
	assert.InDelta(t, 130.0/90, critical.SalesVelocity, 1e-9)
	assert.Equal(t, 7, critical.DaysUntilStockout)
	assert.Equal(t, 63, critical.RestockRecommendation)
	assert.InDelta(t, 0.92, critical.Confidence, 1e-9)
	assert.Equal(t, enums.TrendStable, critical.Trend)
	assert.Equal(t, 0.4, critical.SeasonalImpact)
	assert.Equal(t, 100.0, critical.Price)

	assert.Equal(t, enums.TrendDeclining, got[11].Trend)
	assert.Equal(t, 0, got[11].RestockRecommendation)
	assert.Equal(t, enums.TrendRising, got[12].Trend)
	assert.Equal(t, 20, got[12].RestockRecommendation)
	assert.InDelta(t, 0.74, got[12].Confidence, 1e-9)
	assert.InDelta(t, 0.58, got[13].Confidence, 1e-9)
	assert.Equal(t, 141, got[15].RestockRecommendation)
}

func TestPredictInventoryTrendsInvariants(t *testing.T) {
	svc := newTestService(catalogFixture(winterNow), winterNow)

	for _, minConfidence := range []*float64{nil, floatPtr(0), floatPtr(0.6), floatPtr(0.9)} {
		trends, err := svc.PredictInventoryTrends(context.Background(), TrendParams{MinConfidence: minConfidence})
		require.NoError(t, err)

		threshold := defaultMinConfidence
		if minConfidence != nil {
			threshold = *minConfidence
		}
		for i, trend := range trends {
			assert.GreaterOrEqual(t, trend.Confidence, threshold)
			assert.GreaterOrEqual(t, trend.RestockRecommendation, 0)
			if i == 0 {
				continue
			}
			prev := trends[i-1]
			ordered := prev.DaysUntilStockout < trend.DaysUntilStockout ||
				(prev.DaysUntilStockout == trend.DaysUntilStockout && prev.Confidence >= trend.Confidence)
			assert.True(t, ordered, "trends %d and %d out of order", prev.ProductID, trend.ProductID)
		}
	}
}

func TestPredictInventoryTrendsZeroSalesProduct(t *testing.T) {
	svc := newTestService(catalogFixture(winterNow), winterNow)

	trends, err := svc.PredictInventoryTrends(context.Background(), TrendParams{MinConfidence: floatPtr(0)})
	require.NoError(t, err)

	idle, ok := byID(trends)[14]
	require.True(t, ok, "zero-sales product should be kept when the threshold allows it")
	assert.Equal(t, 0.0, idle.SalesVelocity)
	assert.Equal(t, enums.TrendStable, idle.Trend)
	assert.Equal(t, noStockoutSentinel, idle.DaysUntilStockout)
	assert.Equal(t, 0, idle.RestockRecommendation)
	assert.InDelta(t, 0.12, idle.Confidence, 1e-9)

	defaults, err := svc.PredictInventoryTrends(context.Background(), TrendParams{})
	require.NoError(t, err)
	_, ok = byID(defaults)[14]
	assert.False(t, ok, "default threshold drops low-confidence products")
}

func TestPredictInventoryTrendsUniformSalesScenario(t *testing.T) {
	start := winterNow.Add(-windowDays * day)
	repo := &fakeRepo{products: []models.Product{testProduct(1, "jewelry", 0, 0, "500.00")}}
	for i := 0; i < 90; i++ {
		repo.sales = append(repo.sales, SaleRecord{ProductID: 1, Quantity: 1, CreatedAt: start.Add(time.Duration(i)*day + 12*time.Hour)})
	}

	trends, err := newTestService(repo, winterNow).PredictInventoryTrends(context.Background(), TrendParams{DaysToPredict: 30})
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.InDelta(t, 1.0, trends[0].SalesVelocity, 1e-9)
	assert.Equal(t, 0, trends[0].DaysUntilStockout)
	assert.Equal(t, 51, trends[0].RestockRecommendation)
	assert.InDelta(t, 0.84, trends[0].Confidence, 1e-9)

	summer := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)
	start = summer.Add(-windowDays * day)
	repo.sales = nil
	for i := 0; i < 90; i++ {
		repo.sales = append(repo.sales, SaleRecord{ProductID: 1, Quantity: 1, CreatedAt: start.Add(time.Duration(i)*day + 12*time.Hour)})
	}
	trends, err = newTestService(repo, summer).PredictInventoryTrends(context.Background(), TrendParams{MinConfidence: floatPtr(0)})
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, -0.1, trends[0].SeasonalImpact)
	assert.Equal(t, 33, trends[0].RestockRecommendation)
}

func TestPredictInventoryTrendsIncludeExclude(t *testing.T) {
	svc := newTestService(catalogFixture(winterNow), winterNow)
	ctx := context.Background()

	only, err := svc.PredictInventoryTrends(ctx, TrendParams{IncludeProducts: []uint{12}})
	require.NoError(t, err)
	assert.Equal(t, []uint{12}, ids(only))

	missing, err := svc.PredictInventoryTrends(ctx, TrendParams{IncludeProducts: []uint{99}})
	require.NoError(t, err)
	assert.Empty(t, missing)

	rest, err := svc.PredictInventoryTrends(ctx, TrendParams{ExcludeProducts: []uint{15, 10}})
	require.NoError(t, err)
	assert.Equal(t, []uint{12, 11, 13}, ids(rest))

	both, err := svc.PredictInventoryTrends(ctx, TrendParams{IncludeProducts: []uint{10, 12}, ExcludeProducts: []uint{10}})
	require.NoError(t, err)
	assert.Equal(t, []uint{12}, ids(both))
}

func TestPredictInventoryTrendsIncludeOneOfTen(t *testing.T) {
	repo := &fakeRepo{}
	for id := uint(1); id <= 10; id++ {
		repo.products = append(repo.products, testProduct(id, "bags", 5, 5, "300.00"))
	}
	trends, err := newTestService(repo, winterNow).PredictInventoryTrends(context.Background(), TrendParams{
		IncludeProducts: []uint{5},
		MinConfidence:   floatPtr(0),
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(trends), 1)
	for _, trend := range trends {
		assert.Equal(t, uint(5), trend.ProductID)
	}
}

func TestPredictInventoryTrendsWrapsRepositoryErrors(t *testing.T) {
	cases := map[string]*fakeRepo{
		"products": {productsErr: errors.New("connection refused")},
		"sales":    {salesErr: errors.New("connection refused")},
	}
	for name, repo := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newTestService(repo, winterNow).PredictInventoryTrends(context.Background(), TrendParams{})
			require.Error(t, err)

			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeInternal, typed.Code())
			assert.True(t, strings.HasPrefix(typed.Message(), "failed to predict inventory trends"))
			assert.Contains(t, typed.Message(), "connection refused")
		})
	}
}

func TestInventoryAlerts(t *testing.T) {
	svc := newTestService(catalogFixture(winterNow), winterNow)
	ctx := context.Background()

	alerts, err := svc.InventoryAlerts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{15, 10, 11, 12}, ids(alerts))

	base, err := svc.PredictInventoryTrends(ctx, TrendParams{MinConfidence: floatPtr(alertMinConfidence)})
	require.NoError(t, err)
	baseIDs := byID(base)
	for _, alert := range alerts {
		_, ok := baseIDs[alert.ProductID]
		assert.True(t, ok, "alert %d must come from the base forecast", alert.ProductID)
		assert.True(t, alert.NeedsAttention(), "alert %d fails every alert condition", alert.ProductID)
	}
	for _, trend := range base {
		if trend.NeedsAttention() {
			_, ok := byID(alerts)[trend.ProductID]
			assert.True(t, ok, "product %d qualifies but is missing", trend.ProductID)
		}
	}
}

func TestInventoryAlertsPropagatesErrors(t *testing.T) {
	_, err := newTestService(&fakeRepo{salesErr: errors.New("boom")}, winterNow).InventoryAlerts(context.Background())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.As(err).Code())
}

func TestRestockPlan(t *testing.T) {
	svc := newTestService(catalogFixture(winterNow), winterNow)

	plan, err := svc.RestockPlan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uint{15, 10, 12}, ids(plan.Recommendations))

	sum := 0
	for _, rec := range plan.Recommendations {
		assert.Greater(t, rec.RestockRecommendation, 0)
		assert.GreaterOrEqual(t, rec.Confidence, planMinConfidence)
		sum += rec.RestockRecommendation
	}
	assert.Equal(t, sum, plan.TotalItems)
	assert.Equal(t, 224, plan.TotalItems)
	assert.InDelta(t, 108306.0, plan.TotalEstimatedCost, 1e-6)
}

func TestRestockPlanUsesConfiguredCostRatio(t *testing.T) {
	svc := newTestService(catalogFixture(winterNow), winterNow)
	svc.unitCostRatio = decimal.NewFromFloat(0.5)

	plan, err := svc.RestockPlan(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 141*600.0+63*50.0+20*125.25, plan.TotalEstimatedCost, 1e-6)
}

func TestRestockPlanEmpty(t *testing.T) {
	plan, err := newTestService(&fakeRepo{}, winterNow).RestockPlan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, plan.TotalItems)
	assert.Zero(t, plan.TotalEstimatedCost)
	assert.NotNil(t, plan.Recommendations)
}
