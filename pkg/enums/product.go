package enums

import (
	"fmt"
	"strings"
)

// ProductCategory represents the merchandising categories of the catalog.
type ProductCategory string

const (
	ProductCategoryWomen       ProductCategory = "women"
	ProductCategoryMen         ProductCategory = "men"
	ProductCategoryBags        ProductCategory = "bags"
	ProductCategoryJewelry     ProductCategory = "jewelry"
	ProductCategoryAccessories ProductCategory = "accessories"
)

var validProductCategories = []ProductCategory{
	ProductCategoryWomen,
	ProductCategoryMen,
	ProductCategoryBags,
	ProductCategoryJewelry,
	ProductCategoryAccessories,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory, ignoring case.
func ParseProductCategory(value string) (ProductCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validProductCategories {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// TrendDirection labels the recent sales momentum of a product.
type TrendDirection string

const (
	TrendRising    TrendDirection = "rising"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// String implements fmt.Stringer.
func (t TrendDirection) String() string {
	return string(t)
}

// Season is the meteorological season used by the seasonality table.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
)
