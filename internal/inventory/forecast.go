package inventory

import (
	"math"
	"strings"
	"time"

	"github.com/maisonvelour/storefront-backend/pkg/enums"
)

const (
	windowDays   = 90
	bucketDays   = 7
	bucketCount  = 13
	recentTrends = 3

	safetyBuffer       = 1.2
	noStockoutSentinel = 999

	defaultDaysToPredict = 30
	defaultMinConfidence = 0.5
	alertMinConfidence   = 0.6
	planMinConfidence    = 0.7
	planDaysToPredict    = 30

	criticalStockoutDays = 14
	risingStockoutDays   = 30
	decliningVelocity    = 0.5

	day = 24 * time.Hour
)

// SaleRecord is one order line joined to the timestamp of its order.
type SaleRecord struct {
	ProductID uint
	Quantity  int
	CreatedAt time.Time
}

// salesBuckets sums sold units per product into weekly buckets, oldest first.
// Records outside the trailing window are dropped.
func salesBuckets(now time.Time, sales []SaleRecord) map[uint][]int {
	start := now.Add(-windowDays * day)
	out := make(map[uint][]int)
	for _, sale := range sales {
		elapsed := sale.CreatedAt.Sub(start)
		if elapsed < 0 {
			continue
		}
		bucket := int(elapsed/day) / bucketDays
		if bucket >= bucketCount {
			continue
		}
		buckets, ok := out[sale.ProductID]
		if !ok {
			buckets = make([]int, bucketCount)
			out[sale.ProductID] = buckets
		}
		buckets[bucket] += sale.Quantity
	}
	return out
}

// classifyTrend labels momentum from the direction of the most recent week-over-week changes.
func classifyTrend(buckets []int) enums.TrendDirection {
	if len(buckets) < 2 {
		return enums.TrendStable
	}

	directions := make([]int, 0, len(buckets)-1)
	for i := 0; i+1 < len(buckets); i++ {
		current := float64(buckets[i]) / bucketDays
		next := float64(buckets[i+1]) / bucketDays
		switch {
		case current == 0 && next == 0:
			directions = append(directions, 0)
		case next > current:
			directions = append(directions, 1)
		case next < current:
			directions = append(directions, -1)
		default:
			directions = append(directions, 0)
		}
	}

	if len(directions) > recentTrends {
		directions = directions[len(directions)-recentTrends:]
	}
	sum := 0
	for _, d := range directions {
		sum += d
	}
	switch {
	case sum > 0:
		return enums.TrendRising
	case sum < 0:
		return enums.TrendDeclining
	default:
		return enums.TrendStable
	}
}

var seasonalImpactTable = map[enums.ProductCategory]map[enums.Season]float64{
	enums.ProductCategoryWomen: {
		enums.SeasonWinter: 0.1,
		enums.SeasonSpring: 0.2,
		enums.SeasonSummer: 0.3,
		enums.SeasonFall:   0.15,
	},
	enums.ProductCategoryMen: {
		enums.SeasonWinter: 0.15,
		enums.SeasonSpring: 0.1,
		enums.SeasonSummer: 0.2,
		enums.SeasonFall:   0.1,
	},
	enums.ProductCategoryBags: {
		enums.SeasonWinter: 0.2,
		enums.SeasonSpring: 0.15,
		enums.SeasonSummer: 0.1,
		enums.SeasonFall:   0.25,
	},
	enums.ProductCategoryJewelry: {
		enums.SeasonWinter: 0.4,
		enums.SeasonSpring: 0.1,
		enums.SeasonSummer: -0.1,
		enums.SeasonFall:   0.2,
	},
	enums.ProductCategoryAccessories: {
		enums.SeasonWinter: 0.3,
		enums.SeasonSpring: 0.05,
		enums.SeasonSummer: 0.15,
		enums.SeasonFall:   0.1,
	},
}

const defaultSeasonalImpact = 0.1

func seasonFor(month time.Month) enums.Season {
	switch month {
	case time.December, time.January, time.February:
		return enums.SeasonWinter
	case time.March, time.April, time.May:
		return enums.SeasonSpring
	case time.June, time.July, time.August:
		return enums.SeasonSummer
	default:
		return enums.SeasonFall
	}
}

// seasonalImpact looks up the category bias for the season containing at.
func seasonalImpact(category string, at time.Time) float64 {
	table, ok := seasonalImpactTable[enums.ProductCategory(strings.ToLower(strings.TrimSpace(category)))]
	if !ok {
		return defaultSeasonalImpact
	}
	return table[seasonFor(at.Month())]
}

func daysUntilStockout(stock int, avgDailySales float64) int {
	if avgDailySales <= 0 {
		return noStockoutSentinel
	}
	return int(roundHalfUp(float64(stock) / avgDailySales))
}

func restockRecommendation(avgDailySales, impact float64, daysToPredict, stock int) int {
	adjusted := avgDailySales * (1 + impact)
	ideal := int(math.Ceil(adjusted * float64(daysToPredict) * safetyBuffer))
	if ideal <= stock {
		return 0
	}
	return ideal - stock
}

func confidenceScore(totalSales, nonEmptyPeriods int, avgDailySales, impact float64) float64 {
	volume := math.Min(float64(totalSales)/100, 1)
	coverage := math.Min(float64(nonEmptyPeriods)/10, 1)
	rate := 0.2
	if avgDailySales > 0.1 {
		rate = math.Min(avgDailySales/2, 1)
	}
	seasonal := 1 - math.Abs(impact)*0.5

	// explicit conversions keep each product rounded so the sum is not fused
	score := float64(volume*0.4) + float64(coverage*0.3) + float64(rate*0.2) + float64(seasonal*0.1)
	score = math.Max(0, math.Min(1, score))
	return roundHalfUp(score*100) / 100
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
