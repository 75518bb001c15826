package services

import (
	"context"

	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/budgetcr/budget_backend/internal/dto"
)

// UserSvcFacade exposes user management and credential checks.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// Authenticate verifies username/password and returns the user, or
	// apperrors.ErrUnauthorized on mismatch.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// AuthSvcFacade issues tokens for authenticated users.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
