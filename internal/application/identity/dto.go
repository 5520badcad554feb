package identity

import (
	"time"

	"github.com/bizledger/backend/internal/domain/identity"
	"github.com/bizledger/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
)

// RegisterRequest represents a request to create a new account
type RegisterRequest struct {
	FullName    string `json:"full_name" binding:"required,min=1,max=200"`
	CompanyName string `json:"company_name" binding:"max=200"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AccountResponse represents the authenticated account in API responses
type AccountResponse struct {
	ID          uuid.UUID  `json:"id"`
	FullName    string     `json:"full_name"`
	CompanyName string     `json:"company_name,omitempty"`
	Email       string     `json:"email"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthResponse bundles the account with its token pair
type AuthResponse struct {
	Account AccountResponse `json:"account"`
	Tokens  auth.TokenPair  `json:"tokens"`
}

// ToAccountResponse converts a domain account to a response DTO
func ToAccountResponse(account *identity.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		FullName:    account.FullName,
		CompanyName: account.CompanyName,
		Email:       account.Email,
		LastLoginAt: account.LastLoginAt,
		CreatedAt:   account.CreatedAt,
	}
}
