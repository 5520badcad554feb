package invoicing

import (
	"context"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines the interface for invoice persistence.
// Implementations load and save the invoice together with its lines.
type InvoiceRepository interface {
	// FindByIDForAccount finds an invoice with its items by ID within an account
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Invoice, error)

	// FindAllForAccount finds all invoices with their items for an account
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// Save creates or updates an invoice and its items atomically
	Save(ctx context.Context, invoice *Invoice) error

	// DeleteForAccount deletes an invoice and its items within an account
	DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error

	// CountForAccount counts invoices for an account
	CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatusForAccount counts invoices per status for an account
	CountByStatusForAccount(ctx context.Context, accountID uuid.UUID) (map[InvoiceStatus]int64, error)

	// SumTotalByStatusForAccount sums invoice totals per status for an account
	SumTotalByStatusForAccount(ctx context.Context, accountID uuid.UUID) (map[InvoiceStatus]decimal.Decimal, error)
}
