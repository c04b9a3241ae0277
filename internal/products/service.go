package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/maisonvelour/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonvelour/storefront-backend/pkg/errors"
	"github.com/maisonvelour/storefront-backend/pkg/events"
	"github.com/maisonvelour/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

// Service exposes admin stock management operations.
type Service interface {
	ListProducts(ctx context.Context, category string) ([]ProductDTO, error)
	UpdateInventory(ctx context.Context, actor events.ActorRef, productID uint, input UpdateInventoryInput) (*ProductDTO, error)
}

// UpdateInventoryInput carries the new stock counts for a product.
type UpdateInventoryInput struct {
	Quantity      int
	StoreQuantity int
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo *Repository
	tx   txRunner
	bus  *events.Bus
	logg *logger.Logger
}

// NewService wires the product dependencies. The bus may be nil.
func NewService(repo *Repository, tx txRunner, bus *events.Bus, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, tx: tx, bus: bus, logg: logg}, nil
}

func (s *service) ListProducts(ctx context.Context, category string) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

func (s *service) UpdateInventory(ctx context.Context, actor events.ActorRef, productID uint, input UpdateInventoryInput) (*ProductDTO, error) {
	if productID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Quantity < 0 || input.StoreQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantities must be zero or greater")
	}

	var before, after *models.Product
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		current, err := txRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if err := txRepo.UpdateStock(ctx, productID, input.Quantity, input.StoreQuantity); err != nil {
			return err
		}
		updated, err := txRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		before, after = current, updated
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product inventory")
	}

	payload := events.InventoryUpdatedPayload{
		ProductID:             after.ID,
		Quantity:              after.Quantity,
		StoreQuantity:         after.StoreQuantity,
		PreviousQuantity:      before.Quantity,
		PreviousStoreQuantity: before.StoreQuantity,
	}
	if err := events.Publish(ctx, s.bus, events.InventoryUpdated, &actor, payload); err != nil && s.logg != nil {
		logCtx := s.logg.WithField(ctx, "product_id", after.ID)
		s.logg.Warn(logCtx, fmt.Sprintf("inventory.updated publish failed: %v", err))
	}

	dto := toDTO(*after)
	return &dto, nil
}
