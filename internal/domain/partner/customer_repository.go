package partner

import (
	"context"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByIDForAccount finds a customer by ID within an account
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Customer, error)

	// FindAllForAccount finds all customers for an account
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// FindByIDs finds multiple customers by their IDs within an account
	FindByIDs(ctx context.Context, accountID uuid.UUID, ids []uuid.UUID) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// DeleteForAccount deletes a customer within an account
	DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error

	// CountForAccount counts customers for an account
	CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsForAccount checks if a customer exists within an account
	ExistsForAccount(ctx context.Context, accountID, id uuid.UUID) (bool, error)
}
