package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budgetcr/budget_backend/internal/apperrors"
	"github.com/budgetcr/budget_backend/internal/core/domain"
	portsrepo "github.com/budgetcr/budget_backend/internal/core/ports/repositories"
	"github.com/budgetcr/budget_backend/internal/dto"
	"github.com/budgetcr/budget_backend/internal/utils"
	"github.com/google/uuid"
)

// UserService provides business logic for user management.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser hashes the password and persists a new user.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, req.Username)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.NewString()
	now := time.Now()
	user := domain.User{
		UserID:         userID,
		Username:       req.Username,
		Name:           req.Name,
		HashedPassword: hashed,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, req.Username)
		}
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user in service: %w", err)
	}
	return user, nil
}

// Authenticate verifies the credentials. An unknown username and a wrong
// password both map to ErrUnauthorized so callers cannot distinguish them.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user in service: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.HashedPassword) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	return user, nil
}
