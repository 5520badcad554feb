package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer represents a party an account issues invoices to.
// It is the aggregate root for customer-related operations.
type Customer struct {
	shared.AccountAggregateRoot
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200);not null;index"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(accountID uuid.UUID, name, email string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if err := validateCustomerEmail(email); err != nil {
		return nil, err
	}

	return &Customer{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(accountID),
		Name:                 strings.TrimSpace(name),
		Email:                strings.ToLower(email),
	}, nil
}

// SetName updates the customer's name
func (c *Customer) SetName(name string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetEmail updates the customer's email. Email is required and cannot
// be cleared.
func (c *Customer) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if err := validateCustomerEmail(email); err != nil {
		return err
	}

	c.Email = strings.ToLower(email)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetPhone sets the customer's phone number. An empty phone clears it.
func (c *Customer) SetPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone != "" {
		if err := validateCustomerPhone(phone); err != nil {
			return err
		}
	}

	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetAddress sets the customer's address. An empty address clears it.
func (c *Customer) SetAddress(address string) error {
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	c.Address = strings.TrimSpace(address)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Validation functions

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateCustomerEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Customer email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateCustomerPhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}
