package report

import "github.com/shopspring/decimal"

// StatusBreakdown aggregates the invoices in a single payment status.
type StatusBreakdown struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardSummary is the account-wide snapshot served to the dashboard.
// Revenue counts paid invoices only; Outstanding covers pending and overdue.
type DashboardSummary struct {
	CustomerCount int64                      `json:"customer_count"`
	ProductCount  int64                      `json:"product_count"`
	InvoiceCount  int64                      `json:"invoice_count"`
	Revenue       decimal.Decimal            `json:"revenue"`
	Outstanding   decimal.Decimal            `json:"outstanding"`
	ByStatus      map[string]StatusBreakdown `json:"by_status"`
}
