package persistence

import (
	"context"
	"testing"

	"github.com/bizledger/backend/internal/domain/catalog"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTestDB(t *testing.T) *gorm.DB {
	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(&catalog.Product{}))
	return db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, accountID uuid.UUID, sku, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(accountID, sku, name, decimal.NewFromFloat(9.99))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), product))
	return product
}

func TestGormProductRepository_Save(t *testing.T) {
	t.Run("creates product", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))
		accountID := uuid.New()

		product := createTestProduct(t, repo, accountID, "WID-001", "Widget")

		found, err := repo.FindByIDForAccount(context.Background(), accountID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "WID-001", found.SKU)
		assert.True(t, found.Price.Equal(decimal.NewFromFloat(9.99)))
	})

	t.Run("rejects duplicate SKU across accounts", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))

		createTestProduct(t, repo, uuid.New(), "WID-001", "Widget")

		dup, err := catalog.NewProduct(uuid.New(), "WID-001", "Other Widget", decimal.NewFromInt(5))
		require.NoError(t, err)

		err = repo.Save(context.Background(), dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("persists price updates", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))
		accountID := uuid.New()
		ctx := context.Background()

		product := createTestProduct(t, repo, accountID, "WID-001", "Widget")

		require.NoError(t, product.SetPrice(decimal.NewFromFloat(12.50)))
		require.NoError(t, repo.Save(ctx, product))

		found, err := repo.FindByIDForAccount(ctx, accountID, product.ID)
		require.NoError(t, err)
		assert.True(t, found.Price.Equal(decimal.NewFromFloat(12.50)))
	})
}

func TestGormProductRepository_FindBySKU(t *testing.T) {
	t.Run("finds product regardless of account", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))

		product := createTestProduct(t, repo, uuid.New(), "WID-001", "Widget")

		found, err := repo.FindBySKU(context.Background(), "wid-001")
		require.NoError(t, err)
		assert.Equal(t, product.ID, found.ID)
	})

	t.Run("returns not found for unknown SKU", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))

		_, err := repo.FindBySKU(context.Background(), "MISSING")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindAllForAccount(t *testing.T) {
	t.Run("scopes to account", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))
		accountID := uuid.New()

		createTestProduct(t, repo, accountID, "WID-001", "Widget")
		createTestProduct(t, repo, accountID, "GAD-001", "Gadget")
		createTestProduct(t, repo, uuid.New(), "FOR-001", "Foreign")

		products, err := repo.FindAllForAccount(context.Background(), accountID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("searches by name and SKU", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))
		accountID := uuid.New()

		createTestProduct(t, repo, accountID, "WID-001", "Widget")
		createTestProduct(t, repo, accountID, "GAD-001", "Gadget")

		filter := shared.DefaultFilter()
		filter.Search = "gad"

		products, err := repo.FindAllForAccount(context.Background(), accountID, filter)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "GAD-001", products[0].SKU)
	})
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	repo := NewGormProductRepository(setupProductTestDB(t))
	accountID := uuid.New()

	first := createTestProduct(t, repo, accountID, "WID-001", "Widget")
	foreign := createTestProduct(t, repo, uuid.New(), "FOR-001", "Foreign")

	products, err := repo.FindByIDs(context.Background(), accountID,
		[]uuid.UUID{first.ID, foreign.ID})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, first.ID, products[0].ID)
}

func TestGormProductRepository_DeleteForAccount(t *testing.T) {
	t.Run("deletes within account", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))
		accountID := uuid.New()
		ctx := context.Background()

		product := createTestProduct(t, repo, accountID, "WID-001", "Widget")

		require.NoError(t, repo.DeleteForAccount(ctx, accountID, product.ID))

		_, err := repo.FindByIDForAccount(ctx, accountID, product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("refuses cross-account delete", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))
		ownerID := uuid.New()

		product := createTestProduct(t, repo, ownerID, "WID-001", "Widget")

		err := repo.DeleteForAccount(context.Background(), uuid.New(), product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_CountForAccount(t *testing.T) {
	repo := NewGormProductRepository(setupProductTestDB(t))
	accountID := uuid.New()

	createTestProduct(t, repo, accountID, "WID-001", "Widget")
	createTestProduct(t, repo, uuid.New(), "FOR-001", "Foreign")

	count, err := repo.CountForAccount(context.Background(), accountID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
