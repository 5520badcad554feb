package invoicing

import (
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// AllInvoiceStatuses returns every known status in display order
func AllInvoiceStatuses() []InvoiceStatus {
	return []InvoiceStatus{InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue}
}

// InvoiceItem represents a line on an invoice. Product name and price are
// captured at invoice creation, so later product edits never change what
// was billed.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// NewInvoiceItem creates a new invoice line
func NewInvoiceItem(invoiceID, productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) (*InvoiceItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Invoice represents a bill issued to a customer. Lines and the total are
// frozen at creation; only the status and due date can change afterwards.
type Invoice struct {
	shared.AccountAggregateRoot
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items       []InvoiceItem   `gorm:"foreignKey:InvoiceID;references:ID"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status      InvoiceStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	InvoiceDate time.Time       `gorm:"not null"`
	DueDate     *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new pending invoice for a customer
func NewInvoice(accountID, customerID uuid.UUID) (*Invoice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	return &Invoice{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(accountID),
		CustomerID:           customerID,
		Items:                make([]InvoiceItem, 0),
		TotalAmount:          decimal.Zero,
		Status:               InvoiceStatusPending,
		InvoiceDate:          time.Now(),
	}, nil
}

// SetInvoiceDate overrides the issue date, which defaults to creation time
func (inv *Invoice) SetInvoiceDate(invoiceDate time.Time) {
	inv.InvoiceDate = invoiceDate
	inv.UpdatedAt = time.Now()
}

// AddItem appends a line to an invoice that has not been saved yet
func (inv *Invoice) AddItem(productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) (*InvoiceItem, error) {
	item, err := NewInvoiceItem(inv.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.recalculateTotal()
	inv.UpdatedAt = time.Now()

	return item, nil
}

// SetStatus moves the invoice to another payment status. Any transition
// between the known statuses is allowed, so a paid invoice can be reopened.
func (inv *Invoice) SetStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Status must be pending, paid, or overdue")
	}

	inv.Status = status
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	return nil
}

// SetDueDate sets or clears the invoice due date
func (inv *Invoice) SetDueDate(dueDate *time.Time) {
	inv.DueDate = dueDate
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// HasItems returns true if the invoice has at least one line
func (inv *Invoice) HasItems() bool {
	return len(inv.Items) > 0
}

// ItemCount returns the number of lines on the invoice
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

// IsPending returns true if the invoice is awaiting payment
func (inv *Invoice) IsPending() bool {
	return inv.Status == InvoiceStatusPending
}

// IsPaid returns true if the invoice has been paid
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// IsOverdue returns true if the invoice is overdue
func (inv *Invoice) IsOverdue() bool {
	return inv.Status == InvoiceStatusOverdue
}

func (inv *Invoice) recalculateTotal() {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.Amount)
	}
	inv.TotalAmount = total
}
