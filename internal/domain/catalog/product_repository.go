package catalog

import (
	"context"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence.
// Save surfaces shared.ErrAlreadyExists when the SKU collides with any
// other product in the system.
type ProductRepository interface {
	// FindByIDForAccount finds a product by ID within an account
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Product, error)

	// FindAllForAccount finds all products for an account
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs within an account
	FindByIDs(ctx context.Context, accountID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// FindBySKU finds a product by its normalized SKU, across all accounts
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// DeleteForAccount deletes a product within an account
	DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error

	// CountForAccount counts products for an account
	CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)
}
