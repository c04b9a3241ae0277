package product

import (
	"time"

	"github.com/maisonvelour/storefront-backend/pkg/db/models"
)

// ProductDTO is the stock-oriented product view returned to admins.
type ProductDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Category      string    `json:"category"`
	Price         string    `json:"price"`
	Quantity      int       `json:"quantity"`
	StoreQuantity int       `json:"storeQuantity"`
	TotalStock    int       `json:"totalStock"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		Category:      p.Category,
		Price:         p.Price.StringFixed(2),
		Quantity:      p.Quantity,
		StoreQuantity: p.StoreQuantity,
		TotalStock:    p.TotalStock(),
		UpdatedAt:     p.UpdatedAt,
	}
}
