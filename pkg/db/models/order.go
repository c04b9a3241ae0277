package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/maisonvelour/storefront-backend/pkg/enums"
)

// Order is the parent record of a storefront purchase.
type Order struct {
	ID        uint              `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    uint              `gorm:"column:user_id;not null"`
	Status    enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Total     decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;not null;index"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots the quantity and unit price of one product in an order.
type OrderItem struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   uint            `gorm:"column:order_id;not null;index"`
	ProductID uint            `gorm:"column:product_id;not null;index"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}
