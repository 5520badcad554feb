// Package accountscope fences GORM queries to a single account.
//
// Every business record carries an account_id column. Repositories go
// through AccountDB so the WHERE account_id = ? condition cannot be
// forgotten on account-scoped operations.
package accountscope

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAccountIDRequired is reported when a scoped operation runs
// without an account ID.
var ErrAccountIDRequired = errors.New("account_id is required")

// AccountScope filters a query to the given account.
func AccountScope(accountID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("account_id = ?", accountID)
	}
}

// AccountDB hands out account-filtered query handles to the
// repositories.
type AccountDB struct {
	db *gorm.DB
}

// NewAccountDB wraps an open GORM handle.
func NewAccountDB(db *gorm.DB) *AccountDB {
	return &AccountDB{db: db}
}

// DB exposes the raw handle for operations keyed globally rather than
// per account, such as SKU lookups or saves by primary key.
func (a *AccountDB) DB() *gorm.DB {
	return a.db
}

// WithAccount returns a handle filtered to accountID. The nil account
// poisons the query so it errors instead of crossing accounts.
func (a *AccountDB) WithAccount(ctx context.Context, accountID uuid.UUID) *gorm.DB {
	db := a.db.WithContext(ctx)
	if accountID == uuid.Nil {
		_ = db.AddError(ErrAccountIDRequired)
		return db
	}
	return db.Scopes(AccountScope(accountID))
}

// Transaction runs fn inside a database transaction, handing it an
// AccountDB bound to that transaction. Scoped and global statements
// can be mixed through the transactional handle.
func (a *AccountDB) Transaction(ctx context.Context, fn func(tx *AccountDB) error) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewAccountDB(tx))
	})
}
