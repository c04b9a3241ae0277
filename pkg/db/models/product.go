package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry with separate online and in-store stock counts.
type Product struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string          `gorm:"column:name;not null"`
	Brand         string          `gorm:"column:brand;not null"`
	Category      string          `gorm:"column:category;not null;index"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity      int             `gorm:"column:quantity;not null;default:0"`
	StoreQuantity int             `gorm:"column:store_quantity;not null;default:0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TotalStock is the sum of online and in-store units.
func (p Product) TotalStock() int {
	return p.Quantity + p.StoreQuantity
}
