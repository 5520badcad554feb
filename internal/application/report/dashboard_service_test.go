package report

import (
	"context"
	"errors"
	"testing"

	"github.com/bizledger/backend/internal/domain/catalog"
	"github.com/bizledger/backend/internal/domain/invoicing"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDs(ctx context.Context, accountID uuid.UUID, ids []uuid.UUID) ([]partner.Customer, error) {
	args := m.Called(ctx, accountID, ids)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	args := m.Called(ctx, accountID, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsForAccount(ctx context.Context, accountID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, accountID, id)
	return args.Bool(0), args.Error(1)
}

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

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, accountID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).([]invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	args := m.Called(ctx, accountID, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, accountID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CountByStatusForAccount(ctx context.Context, accountID uuid.UUID) (map[invoicing.InvoiceStatus]int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(map[invoicing.InvoiceStatus]int64), args.Error(1)
}

func (m *MockInvoiceRepository) SumTotalByStatusForAccount(ctx context.Context, accountID uuid.UUID) (map[invoicing.InvoiceStatus]decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(map[invoicing.InvoiceStatus]decimal.Decimal), args.Error(1)
}

func TestDashboardService_Summary(t *testing.T) {
	t.Run("aggregates counts and revenue", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		productRepo := new(MockProductRepository)
		invoiceRepo := new(MockInvoiceRepository)
		service := NewDashboardService(customerRepo, productRepo, invoiceRepo)
		accountID := uuid.New()

		customerRepo.On("CountForAccount", mock.Anything, accountID, shared.Filter{}).Return(int64(12), nil)
		productRepo.On("CountForAccount", mock.Anything, accountID, shared.Filter{}).Return(int64(40), nil)
		invoiceRepo.On("CountByStatusForAccount", mock.Anything, accountID).Return(map[invoicing.InvoiceStatus]int64{
			invoicing.InvoiceStatusPending: 3,
			invoicing.InvoiceStatusPaid:    5,
			invoicing.InvoiceStatusOverdue: 1,
		}, nil)
		invoiceRepo.On("SumTotalByStatusForAccount", mock.Anything, accountID).Return(map[invoicing.InvoiceStatus]decimal.Decimal{
			invoicing.InvoiceStatusPending: decimal.NewFromFloat(150.50),
			invoicing.InvoiceStatusPaid:    decimal.NewFromInt(900),
			invoicing.InvoiceStatusOverdue: decimal.NewFromInt(75),
		}, nil)

		summary, err := service.Summary(context.Background(), accountID)
		require.NoError(t, err)

		assert.Equal(t, int64(12), summary.CustomerCount)
		assert.Equal(t, int64(40), summary.ProductCount)
		assert.Equal(t, int64(9), summary.InvoiceCount)
		assert.True(t, summary.Revenue.Equal(decimal.NewFromInt(900)))
		assert.True(t, summary.Outstanding.Equal(decimal.NewFromFloat(225.50)))
		assert.Equal(t, int64(3), summary.ByStatus["pending"].Count)
		assert.True(t, summary.ByStatus["overdue"].Amount.Equal(decimal.NewFromInt(75)))
	})

	t.Run("fills zero rows for empty accounts", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		productRepo := new(MockProductRepository)
		invoiceRepo := new(MockInvoiceRepository)
		service := NewDashboardService(customerRepo, productRepo, invoiceRepo)
		accountID := uuid.New()

		customerRepo.On("CountForAccount", mock.Anything, accountID, shared.Filter{}).Return(int64(0), nil)
		productRepo.On("CountForAccount", mock.Anything, accountID, shared.Filter{}).Return(int64(0), nil)
		invoiceRepo.On("CountByStatusForAccount", mock.Anything, accountID).
			Return(map[invoicing.InvoiceStatus]int64{}, nil)
		invoiceRepo.On("SumTotalByStatusForAccount", mock.Anything, accountID).
			Return(map[invoicing.InvoiceStatus]decimal.Decimal{}, nil)

		summary, err := service.Summary(context.Background(), accountID)
		require.NoError(t, err)

		assert.Equal(t, int64(0), summary.InvoiceCount)
		assert.True(t, summary.Revenue.IsZero())
		assert.True(t, summary.Outstanding.IsZero())
		require.Len(t, summary.ByStatus, 3)
		assert.True(t, summary.ByStatus["paid"].Amount.IsZero())
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		productRepo := new(MockProductRepository)
		invoiceRepo := new(MockInvoiceRepository)
		service := NewDashboardService(customerRepo, productRepo, invoiceRepo)
		accountID := uuid.New()

		customerRepo.On("CountForAccount", mock.Anything, accountID, shared.Filter{}).
			Return(int64(0), errors.New("connection reset"))

		_, err := service.Summary(context.Background(), accountID)
		assert.Error(t, err)
		invoiceRepo.AssertNotCalled(t, "CountByStatusForAccount")
	})
}
