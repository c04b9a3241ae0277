package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/maisonvelour/storefront-backend/pkg/config"
	"github.com/maisonvelour/storefront-backend/pkg/db"
	"github.com/maisonvelour/storefront-backend/pkg/db/models"
	pkgerrors "github.com/maisonvelour/storefront-backend/pkg/errors"
	"github.com/maisonvelour/storefront-backend/pkg/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Product{}))
	return conn
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, name, category string, quantity, storeQuantity int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          name,
		Brand:         "Maison Velour",
		Category:      category,
		Price:         decimal.RequireFromString("420.00"),
		Quantity:      quantity,
		StoreQuantity: storeQuantity,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func newTestService(t *testing.T, conn *gorm.DB, bus *events.Bus) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), db.NewFromGorm(conn, config.DBDriverSQLite), bus, nil)
	require.NoError(t, err)
	return svc
}

func TestListProductsFiltersByCategory(t *testing.T) {
	conn := newTestDB(t)
	mustCreateProduct(t, conn, "Silk Scarf", "Accessories", 3, 1)
	mustCreateProduct(t, conn, "Tote", "bags", 8, 2)

	svc := newTestService(t, conn, nil)

	bags, err := svc.ListProducts(context.Background(), "BAGS")
	require.NoError(t, err)
	require.Len(t, bags, 1)
	assert.Equal(t, "Tote", bags[0].Name)
	assert.Equal(t, 10, bags[0].TotalStock)
	assert.Equal(t, "420.00", bags[0].Price)

	all, err := svc.ListProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateInventoryPersistsAndPublishes(t *testing.T) {
	conn := newTestDB(t)
	product := mustCreateProduct(t, conn, "Tote", "bags", 8, 2)

	bus := events.NewBus(nil)
	var published []events.Event[events.InventoryUpdatedPayload]
	events.Subscribe(bus, events.InventoryUpdated, func(ctx context.Context, evt events.Event[events.InventoryUpdatedPayload]) {
		published = append(published, evt)
	})

	svc := newTestService(t, conn, bus)
	actor := events.ActorRef{UserID: "12", Role: "storekeeper"}
	dto, err := svc.UpdateInventory(context.Background(), actor, product.ID, UpdateInventoryInput{Quantity: 0, StoreQuantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, dto.Quantity)
	assert.Equal(t, 5, dto.StoreQuantity)
	assert.Equal(t, 5, dto.TotalStock)

	var stored models.Product
	require.NoError(t, conn.First(&stored, product.ID).Error)
	assert.Equal(t, 0, stored.Quantity)
	assert.Equal(t, 5, stored.StoreQuantity)

	require.Len(t, published, 1)
	payload := published[0].Data
	assert.Equal(t, product.ID, payload.ProductID)
	assert.Equal(t, 8, payload.PreviousQuantity)
	assert.Equal(t, 2, payload.PreviousStoreQuantity)
	assert.Equal(t, 5, payload.StoreQuantity)
	require.NotNil(t, published[0].Actor)
	assert.Equal(t, "12", published[0].Actor.UserID)
}

func TestUpdateInventoryRejectsNegativeStock(t *testing.T) {
	conn := newTestDB(t)
	product := mustCreateProduct(t, conn, "Tote", "bags", 8, 2)
	svc := newTestService(t, conn, nil)

	for _, input := range []UpdateInventoryInput{{Quantity: -1}, {StoreQuantity: -3}} {
		_, err := svc.UpdateInventory(context.Background(), events.ActorRef{}, product.ID, input)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	}

	var stored models.Product
	require.NoError(t, conn.First(&stored, product.ID).Error)
	assert.Equal(t, 8, stored.Quantity, "rejected updates must not touch the row")
}

func TestUpdateInventoryUnknownProduct(t *testing.T) {
	svc := newTestService(t, newTestDB(t), nil)

	_, err := svc.UpdateInventory(context.Background(), events.ActorRef{}, 404, UpdateInventoryInput{Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	conn := newTestDB(t)
	_, err := NewService(nil, db.NewFromGorm(conn, config.DBDriverSQLite), nil, nil)
	assert.Error(t, err)
	_, err = NewService(NewRepository(conn), nil, nil, nil)
	assert.Error(t, err)
}
