package identity

import (
	"context"
	"errors"

	"github.com/bizledger/backend/internal/domain/identity"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles account registration and authentication
type AuthService struct {
	accountRepo identity.AccountRepository
	jwtService  *auth.JWTService
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(accountRepo identity.AccountRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Register creates a new account and returns it with a token pair
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.accountRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	account, err := identity.NewAccount(req.FullName, req.CompanyName, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		// Concurrent registration with the same email loses the race here.
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
		}
		return nil, err
	}

	s.logger.Info("Account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("email", account.Email))

	return s.issueTokens(account)
}

// Login authenticates an account and returns it with a token pair.
// Unknown emails and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	account, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email")
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !account.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt",
			zap.String("account_id", account.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	account.RecordLoginSuccess()
	if err := s.accountRepo.Update(ctx, account); err != nil {
		// Do not fail the login over a bookkeeping write.
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("Account logged in", zap.String("account_id", account.ID.String()))

	return s.issueTokens(account)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid or expired refresh token")
	}

	accountID, err := claims.GetAccountUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid or expired refresh token")
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Account no longer exists")
		}
		return nil, err
	}

	return s.issueTokens(account)
}

// CurrentAccount returns the account behind an authenticated request
func (s *AuthService) CurrentAccount(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	response := ToAccountResponse(account)
	return &response, nil
}

func (s *AuthService) issueTokens(account *identity.Account) (*AuthResponse, error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(account.ID, account.Email)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	return &AuthResponse{
		Account: ToAccountResponse(account),
		Tokens:  *tokenPair,
	}, nil
}
