package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/maisonvelour/storefront-backend/internal/repo"
	"github.com/maisonvelour/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes the catalog and sales reads the forecaster needs.
type Repository interface {
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	ListSalesBetween(ctx context.Context, start, end time.Time) ([]SaleRecord, error)
}

type gormRepository struct {
	repo.Base
}

// NewRepository builds a Repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{Base: repo.NewBase(db)}
}

// ListProducts returns the catalog, optionally restricted to one category (case-insensitive).
func (r *gormRepository) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	query := r.DB(ctx).Model(&models.Product{})
	if c := strings.TrimSpace(category); c != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(c))
	}
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListSalesBetween joins order items to their order timestamp within [start, end].
func (r *gormRepository) ListSalesBetween(ctx context.Context, start, end time.Time) ([]SaleRecord, error) {
	var rows []SaleRecord
	err := r.DB(ctx).
		Table("order_items AS oi").
		Select("oi.product_id AS product_id, oi.quantity AS quantity, o.created_at AS created_at").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.created_at >= ? AND o.created_at <= ?", start.UTC(), end.UTC()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
