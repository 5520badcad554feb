package catalog

import (
	"context"
	"testing"

	"github.com/bizledger/backend/internal/domain/catalog"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, accountID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, accountID, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	args := m.Called(ctx, accountID, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestProductService_Create(t *testing.T) {
	t.Run("creates product with normalized SKU", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		accountID := uuid.New()

		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(context.Background(), accountID, CreateProductRequest{
			SKU:   "wid-001",
			Name:  "Widget",
			Price: decimal.NewFromFloat(9.99),
		})

		require.NoError(t, err)
		assert.Equal(t, "WID-001", resp.SKU)
		assert.True(t, resp.Price.Equal(decimal.NewFromFloat(9.99)))
		repo.AssertExpectations(t)
	})

	t.Run("surfaces SKU conflicts", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("Save", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := service.Create(context.Background(), uuid.New(), CreateProductRequest{
			SKU:   "WID-001",
			Name:  "Widget",
			Price: decimal.NewFromInt(5),
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		_, err := service.Create(context.Background(), uuid.New(), CreateProductRequest{
			SKU:   "WID-001",
			Name:  "Widget",
			Price: decimal.NewFromInt(-1),
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_GetByID(t *testing.T) {
	t.Run("returns product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		accountID := uuid.New()

		product, err := catalog.NewProduct(accountID, "WID-001", "Widget", decimal.NewFromInt(10))
		require.NoError(t, err)

		repo.On("FindByIDForAccount", mock.Anything, accountID, product.ID).Return(product, nil)

		resp, err := service.GetByID(context.Background(), accountID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, resp.ID)
	})

	t.Run("returns not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		repo.On("FindByIDForAccount", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, shared.ErrNotFound)

		_, err := service.GetByID(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_List(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	accountID := uuid.New()

	product, err := catalog.NewProduct(accountID, "WID-001", "Widget", decimal.NewFromInt(10))
	require.NoError(t, err)

	expectedFilter := shared.Filter{
		Page: 1, PageSize: 20, OrderBy: "created_at", OrderDir: "desc",
	}
	repo.On("FindAllForAccount", mock.Anything, accountID, expectedFilter).
		Return([]catalog.Product{*product}, nil)
	repo.On("CountForAccount", mock.Anything, accountID, expectedFilter).
		Return(int64(1), nil)

	products, total, err := service.List(context.Background(), accountID, ProductListFilter{})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, int64(1), total)
}

func TestProductService_Update(t *testing.T) {
	t.Run("applies only supplied fields", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		accountID := uuid.New()

		product, err := catalog.NewProduct(accountID, "WID-001", "Widget", decimal.NewFromInt(10))
		require.NoError(t, err)

		repo.On("FindByIDForAccount", mock.Anything, accountID, product.ID).Return(product, nil)
		repo.On("Save", mock.Anything, product).Return(nil)

		newPrice := decimal.NewFromFloat(12.50)
		resp, err := service.Update(context.Background(), accountID, product.ID, UpdateProductRequest{
			Price: &newPrice,
		})

		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(newPrice))
		assert.Equal(t, "WID-001", resp.SKU)
		assert.Equal(t, "Widget", resp.Name)
	})

	t.Run("surfaces SKU conflicts on update", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)
		accountID := uuid.New()

		product, err := catalog.NewProduct(accountID, "WID-001", "Widget", decimal.NewFromInt(10))
		require.NoError(t, err)

		repo.On("FindByIDForAccount", mock.Anything, accountID, product.ID).Return(product, nil)
		repo.On("Save", mock.Anything, product).Return(shared.ErrAlreadyExists)

		newSKU := "GAD-001"
		_, err = service.Update(context.Background(), accountID, product.ID, UpdateProductRequest{
			SKU: &newSKU,
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestProductService_Delete(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)
	accountID := uuid.New()
	productID := uuid.New()

	repo.On("DeleteForAccount", mock.Anything, accountID, productID).Return(nil)

	err := service.Delete(context.Background(), accountID, productID)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
