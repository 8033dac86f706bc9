package catalog

import (
	"context"
	"testing"

	"github.com/amontes/storefront-backend/pkg/db/models"
	pkgerrors "github.com/amontes/storefront-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  unit_price NUMERIC NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, category, price string, stock int, active bool) models.Product {
	t.Helper()
	p := models.Product{
		ID:        uuid.New(),
		Name:      name,
		Category:  category,
		UnitPrice: decimal.RequireFromString(price),
		Stock:     stock,
		IsActive:  active,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestListProductsFiltersByCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedProduct(t, db, "Headphones", "Electronics", "59.99", 10, true)
	seedProduct(t, db, "Sneakers", "Sports", "89.99", 5, true)

	svc := newTestService(t, db)

	list, err := svc.ListProducts(context.Background(), ListFilter{Category: "electronics"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Headphones", list[0].Name)
}

func TestListProductsAllCategoryMatchesEverything(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedProduct(t, db, "Headphones", "Electronics", "59.99", 10, true)
	seedProduct(t, db, "Sneakers", "Sports", "89.99", 5, true)

	svc := newTestService(t, db)

	list, err := svc.ListProducts(context.Background(), ListFilter{Category: "All"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListProductsSearchMatchesNameAndDescription(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedProduct(t, db, "Wireless Headphones", "Electronics", "59.99", 10, true)
	p := models.Product{
		ID:          uuid.New(),
		Name:        "Desk Lamp",
		Description: "Warm wireless charging base",
		Category:    "Home",
		UnitPrice:   decimal.RequireFromString("24.99"),
		Stock:       3,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&p).Error)
	seedProduct(t, db, "Sneakers", "Sports", "89.99", 5, true)

	svc := newTestService(t, db)

	list, err := svc.ListProducts(context.Background(), ListFilter{Search: "WIRELESS"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListProductsHonorsLimit(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedProduct(t, db, "Headphones", "Electronics", "59.99", 10, true)
	seedProduct(t, db, "Sneakers", "Sports", "89.99", 5, true)
	seedProduct(t, db, "Desk Lamp", "Home", "24.99", 3, true)

	svc := newTestService(t, db)

	list, err := svc.ListProducts(context.Background(), ListFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListProductsExcludesInactive(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedProduct(t, db, "Retired Gadget", "Electronics", "10.00", 1, false)

	svc := newTestService(t, db)

	list, err := svc.ListProducts(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetProductNotFound(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.GetProduct(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetProductHidesInactive(t *testing.T) {
	db := setupCatalogTestDB(t)
	p := seedProduct(t, db, "Retired Gadget", "Electronics", "10.00", 1, false)

	svc := newTestService(t, db)

	_, err := svc.GetProduct(context.Background(), p.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestResolveForCartChecksStock(t *testing.T) {
	db := setupCatalogTestDB(t)
	p := seedProduct(t, db, "Headphones", "Electronics", "59.99", 2, true)

	svc := newTestService(t, db)

	resolved, err := svc.ResolveForCart(context.Background(), p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, p.ID, resolved.ID)

	_, err = svc.ResolveForCart(context.Background(), p.ID, 3)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestCartSnapshotCapturesDisplayFields(t *testing.T) {
	dto := ProductDTO{
		ID:    uuid.New(),
		Name:  "Headphones",
		Image: "https://cdn.example.com/headphones.png",
		Price: decimal.RequireFromString("59.99"),
	}

	snap := dto.CartSnapshot()
	assert.Equal(t, dto.ID, snap.ID)
	assert.Equal(t, dto.Name, snap.Name)
	assert.Equal(t, dto.Image, snap.ImageURL)
	assert.True(t, snap.UnitPrice.Equal(dto.Price))
}

func TestResolveForCartRejectsNonPositiveQuantity(t *testing.T) {
	db := setupCatalogTestDB(t)
	p := seedProduct(t, db, "Headphones", "Electronics", "59.99", 2, true)

	svc := newTestService(t, db)

	_, err := svc.ResolveForCart(context.Background(), p.ID, 0)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
