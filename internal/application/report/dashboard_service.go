package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/domain/catalog"
	"github.com/bizledger/backend/internal/domain/invoicing"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared"
)

// DashboardService computes account-wide aggregates for the dashboard.
// All numbers come from scoped SQL aggregates, nothing is cached.
type DashboardService struct {
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	invoiceRepo  invoicing.InvoiceRepository
}

func NewDashboardService(
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	invoiceRepo invoicing.InvoiceRepository,
) *DashboardService {
	return &DashboardService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Summary returns the dashboard snapshot for one account.
func (s *DashboardService) Summary(ctx context.Context, accountID uuid.UUID) (*DashboardSummary, error) {
	customerCount, err := s.customerRepo.CountForAccount(ctx, accountID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	productCount, err := s.productRepo.CountForAccount(ctx, accountID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	counts, err := s.invoiceRepo.CountByStatusForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	totals, err := s.invoiceRepo.SumTotalByStatusForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		CustomerCount: customerCount,
		ProductCount:  productCount,
		Revenue:       decimal.Zero,
		Outstanding:   decimal.Zero,
		ByStatus:      make(map[string]StatusBreakdown, len(invoicing.AllInvoiceStatuses())),
	}

	for _, status := range invoicing.AllInvoiceStatuses() {
		breakdown := StatusBreakdown{
			Count:  counts[status],
			Amount: decimal.Zero,
		}
		if total, ok := totals[status]; ok {
			breakdown.Amount = total
		}
		summary.ByStatus[status.String()] = breakdown
		summary.InvoiceCount += breakdown.Count

		if status == invoicing.InvoiceStatusPaid {
			summary.Revenue = summary.Revenue.Add(breakdown.Amount)
		} else {
			summary.Outstanding = summary.Outstanding.Add(breakdown.Amount)
		}
	}

	return summary, nil
}
