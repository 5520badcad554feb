package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bizledger/backend/internal/domain/invoicing"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/persistence/accountscope"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *accountscope.AccountDB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: accountscope.NewAccountDB(db)}
}

// FindByIDForAccount finds an invoice with its items by ID within an account
func (r *GormInvoiceRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*invoicing.Invoice, error) {
	var invoice invoicing.Invoice
	if err := r.db.WithAccount(ctx, accountID).
		Preload("Items").
		Where("id = ?", id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAllForAccount finds all invoices with their items for an account
func (r *GormInvoiceRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoices []invoicing.Invoice
	query := r.applyFilter(
		r.db.WithAccount(ctx, accountID).Model(&invoicing.Invoice{}),
		filter,
	)

	if err := query.Preload("Items").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates an invoice and its items atomically.
// Items never change after creation, so existing item rows are left alone.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	return r.db.Transaction(ctx, func(tx *accountscope.AccountDB) error {
		if err := tx.DB().Omit("Items").Save(invoice).Error; err != nil {
			return err
		}
		for i := range invoice.Items {
			item := &invoice.Items[i]
			item.InvoiceID = invoice.ID
			if err := tx.DB().Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteForAccount deletes an invoice and its items within an account
func (r *GormInvoiceRepository) DeleteForAccount(ctx context.Context, accountID, id uuid.UUID) error {
	return r.db.Transaction(ctx, func(tx *accountscope.AccountDB) error {
		result := tx.WithAccount(ctx, accountID).
			Where("id = ?", id).
			Delete(&invoicing.Invoice{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.DB().Delete(&invoicing.InvoiceItem{}, "invoice_id = ?", id).Error
	})
}

// CountForAccount counts invoices for an account
func (r *GormInvoiceRepository) CountForAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithAccount(ctx, accountID).Model(&invoicing.Invoice{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatusForAccount counts invoices per status for an account
func (r *GormInvoiceRepository) CountByStatusForAccount(ctx context.Context, accountID uuid.UUID) (map[invoicing.InvoiceStatus]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := r.db.WithAccount(ctx, accountID).
		Model(&invoicing.Invoice{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[invoicing.InvoiceStatus]int64, len(rows))
	for _, row := range rows {
		counts[invoicing.InvoiceStatus(row.Status)] = row.Total
	}
	return counts, nil
}

// SumTotalByStatusForAccount sums invoice totals per status for an account
func (r *GormInvoiceRepository) SumTotalByStatusForAccount(ctx context.Context, accountID uuid.UUID) (map[invoicing.InvoiceStatus]decimal.Decimal, error) {
	var rows []struct {
		Status string
		Total  decimal.Decimal
	}
	if err := r.db.WithAccount(ctx, accountID).
		Model(&invoicing.Invoice{}).
		Select("status, COALESCE(SUM(total_amount), 0) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	sums := make(map[invoicing.InvoiceStatus]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[invoicing.InvoiceStatus(row.Status)] = row.Total
	}
	return sums, nil
}

// applyFilter applies status filtering, ordering and pagination
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
