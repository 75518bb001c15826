package services

import (
	"context"
	"fmt"
	"time"

	"github.com/budgetcr/budget_backend/internal/core/domain"
	portssvc "github.com/budgetcr/budget_backend/internal/core/ports/services"
	"github.com/budgetcr/budget_backend/internal/dto"
	"github.com/budgetcr/budget_backend/internal/platform/config"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService handles registration and login, issuing signed JWTs.
type AuthService struct {
	userService portssvc.UserSvcFacade
	cfg         *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(userService portssvc.UserSvcFacade, cfg *config.Config) *AuthService {
	return &AuthService{
		userService: userService,
		cfg:         cfg,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	return s.userService.CreateUser(ctx, req)
}

// Login authenticates the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	claims := jwt.RegisteredClaims{
		Subject:   user.UserID,
		Issuer:    s.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}
