package invoicing

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizledger/backend/internal/domain/catalog"
	"github.com/bizledger/backend/internal/domain/invoicing"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceService handles invoice-related business operations
type InvoiceService struct {
	invoiceRepo  invoicing.InvoiceRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo invoicing.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// Create validates the customer and every product reference, snapshots
// product names and prices, and persists the invoice in one save. Nothing
// is written when any line fails validation.
func (s *InvoiceService) Create(ctx context.Context, accountID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	exists, err := s.customerRepo.ExistsForAccount(ctx, accountID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	products, err := s.resolveProducts(ctx, accountID, req.Items)
	if err != nil {
		return nil, err
	}

	invoice, err := invoicing.NewInvoice(accountID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		product := products[item.ProductID]

		unitPrice := product.Price
		if item.Price != nil {
			unitPrice = *item.Price
		}

		if _, err := invoice.AddItem(product.ID, product.Name, decimal.NewFromInt(int64(item.Quantity)), unitPrice); err != nil {
			return nil, err
		}
	}

	if req.Status != "" {
		if err := invoice.SetStatus(invoicing.InvoiceStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	if req.InvoiceDate != nil {
		invoice.SetInvoiceDate(*req.InvoiceDate)
	}
	if req.DueDate != nil {
		invoice.SetDueDate(req.DueDate)
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	return s.withCustomer(ctx, accountID, invoice)
}

// GetByID retrieves an invoice with customer fields resolved at read time
func (s *InvoiceService) GetByID(ctx context.Context, accountID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForAccount(ctx, accountID, invoiceID)
	if err != nil {
		return nil, err
	}

	return s.withCustomer(ctx, accountID, invoice)
}

// List retrieves the account's invoices with their customers joined
func (s *InvoiceService) List(ctx context.Context, accountID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}
	if filter.Status != "" {
		domainFilter.Filters = map[string]any{"status": filter.Status}
	}

	invoices, err := s.invoiceRepo.FindAllForAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.CountForAccount(ctx, accountID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	customers, err := s.customersByID(ctx, accountID, invoices)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i], customers[invoices[i].CustomerID])
	}
	return responses, total, nil
}

// Update changes the status and/or due date of an invoice. Items and the
// total are frozen at creation and cannot change here.
func (s *InvoiceService) Update(ctx context.Context, accountID, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForAccount(ctx, accountID, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := invoice.SetStatus(invoicing.InvoiceStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		invoice.SetDueDate(req.DueDate)
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	return s.withCustomer(ctx, accountID, invoice)
}

// Delete removes an invoice and its items from the account
func (s *InvoiceService) Delete(ctx context.Context, accountID, invoiceID uuid.UUID) error {
	return s.invoiceRepo.DeleteForAccount(ctx, accountID, invoiceID)
}

// resolveProducts batch-loads every referenced product within the account
// and rejects the request on the first missing reference.
func (s *InvoiceService) resolveProducts(ctx context.Context, accountID uuid.UUID, items []CreateInvoiceItemRequest) (map[uuid.UUID]catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, accountID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found", id))
		}
	}
	return byID, nil
}

// withCustomer joins the customer onto the invoice. A deleted customer
// reference renders with empty fields; any other lookup failure propagates.
func (s *InvoiceService) withCustomer(ctx context.Context, accountID uuid.UUID, invoice *invoicing.Invoice) (*InvoiceResponse, error) {
	customer, err := s.customerRepo.FindByIDForAccount(ctx, accountID, invoice.CustomerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	response := ToInvoiceResponse(invoice, customer)
	return &response, nil
}

// customersByID batch-loads the customers referenced by a page of invoices
func (s *InvoiceService) customersByID(ctx context.Context, accountID uuid.UUID, invoices []invoicing.Invoice) (map[uuid.UUID]*partner.Customer, error) {
	ids := make([]uuid.UUID, 0, len(invoices))
	seen := make(map[uuid.UUID]bool, len(invoices))
	for _, invoice := range invoices {
		if !seen[invoice.CustomerID] {
			seen[invoice.CustomerID] = true
			ids = append(ids, invoice.CustomerID)
		}
	}

	customers, err := s.customerRepo.FindByIDs(ctx, accountID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*partner.Customer, len(customers))
	for i := range customers {
		byID[customers[i].ID] = &customers[i]
	}
	return byID, nil
}
