package invoicing

import (
	"time"

	"github.com/bizledger/backend/internal/domain/invoicing"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceItemRequest represents one line of a new invoice.
// When the price is absent the product's current price is used.
type CreateInvoiceItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
	Price     *decimal.Decimal `json:"price"`
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	CustomerID  uuid.UUID                  `json:"customer_id" binding:"required"`
	Items       []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	Status      string                     `json:"status" binding:"omitempty,oneof=pending paid overdue"`
	InvoiceDate *time.Time                 `json:"invoice_date"`
	DueDate     *time.Time                 `json:"due_date"`
}

// UpdateInvoiceRequest represents a request to update an invoice.
// Only the status and due date can change after creation.
type UpdateInvoiceRequest struct {
	Status  *string    `json:"status" binding:"omitempty,oneof=pending paid overdue"`
	DueDate *time.Time `json:"due_date"`
}

// InvoiceItemResponse represents an invoice line in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents an invoice in API responses. Customer fields
// are resolved at read time; a deleted customer renders as empty fields.
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	CustomerID    uuid.UUID             `json:"customer_id"`
	CustomerName  string                `json:"customer_name"`
	CustomerEmail string                `json:"customer_email"`
	Items         []InvoiceItemResponse `json:"items"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	Status        string                `json:"status"`
	InvoiceDate   time.Time             `json:"invoice_date"`
	DueDate       *time.Time            `json:"due_date,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// InvoiceListFilter represents filter options for invoice list
type InvoiceListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending paid overdue"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at updated_at total_amount due_date"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToInvoiceResponse converts a domain invoice, joining the customer when known
func ToInvoiceResponse(invoice *invoicing.Invoice, customer *partner.Customer) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(invoice.Items))
	for i, item := range invoice.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	response := InvoiceResponse{
		ID:          invoice.ID,
		CustomerID:  invoice.CustomerID,
		Items:       items,
		TotalAmount: invoice.TotalAmount,
		Status:      invoice.Status.String(),
		InvoiceDate: invoice.InvoiceDate,
		DueDate:     invoice.DueDate,
		CreatedAt:   invoice.CreatedAt,
		UpdatedAt:   invoice.UpdatedAt,
	}
	if customer != nil {
		response.CustomerName = customer.Name
		response.CustomerEmail = customer.Email
	}
	return response
}
