package product

import (
	"context"
	"strings"

	"github.com/maisonvelour/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together the product persistence helpers used by admins.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products ordered by id, optionally restricted to a category (case-insensitive).
func (r *Repository) List(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if c := strings.TrimSpace(category); c != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(c))
	}
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateStock overwrites both stock counters of a product.
func (r *Repository) UpdateStock(ctx context.Context, id uint, quantity, storeQuantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"quantity":       quantity,
			"store_quantity": storeQuantity,
		}).Error
}
