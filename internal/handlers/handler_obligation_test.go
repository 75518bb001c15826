package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/budgetcr/budget_backend/internal/apperrors"
	"github.com/budgetcr/budget_backend/internal/core/domain"
	portssvc "github.com/budgetcr/budget_backend/internal/core/ports/services"
	"github.com/budgetcr/budget_backend/internal/dto"
	"github.com/budgetcr/budget_backend/internal/handlers"
	"github.com/budgetcr/budget_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ObligationService ---
type MockObligationService struct {
	mock.Mock
}

func (m *MockObligationService) CreateObligation(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) (*domain.Obligation, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) GetObligation(ctx context.Context, ownerID, obligationID string) (*domain.Obligation, error) {
	args := m.Called(ctx, ownerID, obligationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) ListObligations(ctx context.Context, ownerID string) ([]domain.Obligation, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Obligation), args.Error(1)
}

func (m *MockObligationService) UpdateObligation(ctx context.Context, ownerID, obligationID string, req dto.UpdateObligationRequest) (*domain.Obligation, error) {
	args := m.Called(ctx, ownerID, obligationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Obligation), args.Error(1)
}

func (m *MockObligationService) DeleteObligation(ctx context.Context, ownerID, obligationID string) error {
	args := m.Called(ctx, ownerID, obligationID)
	return args.Error(0)
}

func (m *MockObligationService) MarkPaid(ctx context.Context, ownerID, obligationID string, amount *domain.Money, now time.Time) (*domain.PaymentInstance, error) {
	args := m.Called(ctx, ownerID, obligationID, amount, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentInstance), args.Error(1)
}

func (m *MockObligationService) UnmarkPaid(ctx context.Context, ownerID, obligationID string, now time.Time) error {
	args := m.Called(ctx, ownerID, obligationID, now)
	return args.Error(0)
}

func (m *MockObligationService) IsPaidForCurrentPeriod(ctx context.Context, obligationID string, now time.Time) (bool, error) {
	args := m.Called(ctx, obligationID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockObligationService) IsPaidForCurrentPeriods(ctx context.Context, obligations []domain.Obligation, now time.Time) (map[string]bool, error) {
	args := m.Called(ctx, obligations, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ObligationSvcFacade = (*MockObligationService)(nil)

// --- Test Suite ---
type ObligationHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockObligationService *MockObligationService
	jwtSecret             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ObligationHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *ObligationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockObligationService = new(MockObligationService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterObligationRoutes(v1, suite.mockObligationService)
}

func (suite *ObligationHandlerTestSuite) TestCreateObligation_Success() {
	userID := uuid.NewString()
	obligation := &domain.Obligation{
		ObligationID: uuid.NewString(),
		OwnerID:      userID,
		Name:         "Rent",
		Amount:       domain.Money{MinorUnits: 35000000, Currency: domain.CRC},
		Cadence:      domain.CadenceMonthly,
	}
	suite.mockObligationService.On("CreateObligation", mock.Anything, mock.AnythingOfType("dto.CreateObligationRequest"), userID).
		Return(obligation, nil).Once()

	body := []byte(`{"name":"Rent","amount":"350000","currencyCode":"CRC","cadence":"MONTHLY"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/obligations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ObligationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(obligation.ObligationID, resp.ObligationID)
	suite.Equal("₡350000.00", resp.Amount.Display)
	suite.mockObligationService.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestCreateObligation_RejectedByValidator() {
	userID := uuid.NewString()

	// Unsupported currency code fails binding before the service is reached.
	body := []byte(`{"name":"Rent","amount":"100","currencyCode":"GBP","cadence":"MONTHLY"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/obligations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockObligationService.AssertNotCalled(suite.T(), "CreateObligation")
}

func (suite *ObligationHandlerTestSuite) TestMarkPaid_Conflict() {
	userID := uuid.NewString()
	obligationID := uuid.NewString()
	suite.mockObligationService.On("MarkPaid", mock.Anything, userID, obligationID, (*domain.Money)(nil), mock.AnythingOfType("time.Time")).
		Return(nil, fmt.Errorf("%w: already recorded", apperrors.ErrAlreadyPaid)).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/obligations/"+obligationID+"/payments", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockObligationService.AssertExpectations(suite.T())
}

func (suite *ObligationHandlerTestSuite) TestUnmarkPaid_NoContent() {
	userID := uuid.NewString()
	obligationID := uuid.NewString()
	suite.mockObligationService.On("UnmarkPaid", mock.Anything, userID, obligationID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/obligations/"+obligationID+"/payments", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *ObligationHandlerTestSuite) TestListObligations_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/obligations", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockObligationService.AssertNotCalled(suite.T(), "ListObligations")
}

func (suite *ObligationHandlerTestSuite) TestGetObligation_Forbidden() {
	userID := uuid.NewString()
	obligationID := uuid.NewString()
	suite.mockObligationService.On("GetObligation", mock.Anything, userID, obligationID).
		Return(nil, fmt.Errorf("%w: obligation %s", apperrors.ErrForbidden, obligationID)).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/obligations/"+obligationID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
}

func TestObligationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ObligationHandlerTestSuite))
}
