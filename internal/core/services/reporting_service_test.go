package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/budgetcr/budget_backend/internal/core/fx"
	portssvc "github.com/budgetcr/budget_backend/internal/core/ports/services"
	"github.com/budgetcr/budget_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockObligationRepo *MockObligationRepository
	mockPaymentRepo    *MockPaymentInstanceRepository
	mockRateRepo       *MockExchangeRateRepository
	service            portssvc.ReportingSvcFacade

	ownerID string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockObligationRepo = new(MockObligationRepository)
	suite.mockPaymentRepo = new(MockPaymentInstanceRepository)
	suite.mockRateRepo = new(MockExchangeRateRepository)

	obligationSvc := services.NewObligationService(suite.mockObligationRepo, suite.mockPaymentRepo)
	rateSvc := services.NewExchangeRateService(suite.mockRateRepo, services.NewCurrencyService())
	suite.service = services.NewReportingService(obligationSvc, rateSvc)

	suite.ownerID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_TotalsAndWarnings() {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	marchStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	rent := domain.Obligation{
		ObligationID: uuid.NewString(),
		OwnerID:      suite.ownerID,
		Name:         "Rent",
		Amount:       domain.Money{MinorUnits: 10000, Currency: domain.USD}, // 100.00 USD
		Cadence:      domain.CadenceMonthly,
	}
	music := domain.Obligation{
		ObligationID: uuid.NewString(),
		OwnerID:      suite.ownerID,
		Name:         "Music",
		Amount:       domain.Money{MinorUnits: 5000, Currency: domain.EUR}, // 50.00 EUR
		Cadence:      domain.CadenceMonthly,
	}
	news := domain.Obligation{
		ObligationID: uuid.NewString(),
		OwnerID:      suite.ownerID,
		Name:         "News",
		Amount:       domain.Money{MinorUnits: 2000, Currency: domain.EUR}, // 20.00 EUR
		Cadence:      domain.CadenceMonthly,
	}

	suite.mockObligationRepo.On("ListObligationsByOwner", ctx, suite.ownerID).
		Return([]domain.Obligation{rent, music, news}, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentInstancesSince", ctx,
		[]string{rent.ObligationID, music.ObligationID, news.ObligationID}, marchStart).
		Return([]domain.PaymentInstance{
			{ObligationID: rent.ObligationID, PeriodStart: marchStart},
		}, nil).Once()
	// Only USD has a rate into the base currency; EUR cannot resolve.
	suite.mockRateRepo.On("ListRatesForOwner", ctx, suite.ownerID).
		Return([]domain.ExchangeRate{
			{FromCurrencyCode: domain.USD, ToCurrencyCode: domain.CRC, RateType: domain.RateTypeBuy, Rate: decimal.NewFromInt(500)},
		}, nil).Once()

	summary, err := suite.service.DashboardSummary(ctx, suite.ownerID, now)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "CRC", summary.BaseCurrency)
	assert.Len(suite.T(), summary.Obligations, 3)

	// Rent converts directly: 100 USD * 500 = 50,000.00 CRC.
	assert.Equal(suite.T(), string(fx.MethodDirect), summary.Obligations[0].Method)
	assert.Equal(suite.T(), int64(5000000), summary.Obligations[0].Converted.MinorUnits)
	assert.True(suite.T(), summary.Obligations[0].Paid)
	assert.True(suite.T(), summary.Obligations[0].PeriodStart.Equal(marchStart))
	assert.Equal(suite.T(), "March 2024", summary.Obligations[0].PeriodLabel)

	// The EUR rows stay unresolved and keep their original amounts.
	assert.Equal(suite.T(), string(fx.MethodUnresolved), summary.Obligations[1].Method)
	assert.Equal(suite.T(), int64(5000), summary.Obligations[1].Converted.MinorUnits)
	assert.Equal(suite.T(), "EUR", summary.Obligations[1].Converted.Currency)
	assert.False(suite.T(), summary.Obligations[1].Paid)

	// Totals mix base minor units with the unresolved originals.
	assert.Equal(suite.T(), int64(5007000), summary.TotalDue.MinorUnits)
	assert.Equal(suite.T(), int64(5000000), summary.TotalPaid.MinorUnits)
	assert.Equal(suite.T(), int64(7000), summary.TotalUnpaid.MinorUnits)

	// Two EUR obligations, one warning: deduplicated per currency pair.
	assert.Len(suite.T(), summary.Warnings, 1)
	assert.Equal(suite.T(), "EUR", summary.Warnings[0].FromCurrency)
	assert.Equal(suite.T(), "CRC", summary.Warnings[0].ToCurrency)
	assert.NotEmpty(suite.T(), summary.Warnings[0].Reason)

	suite.mockObligationRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_ChainConversion() {
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	marchStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	software := domain.Obligation{
		ObligationID: uuid.NewString(),
		OwnerID:      suite.ownerID,
		Name:         "Software",
		Amount:       domain.Money{MinorUnits: 10000, Currency: domain.CAD}, // 100.00 CAD
		Cadence:      domain.CadenceMonthly,
	}

	suite.mockObligationRepo.On("ListObligationsByOwner", ctx, suite.ownerID).
		Return([]domain.Obligation{software}, nil).Once()
	suite.mockPaymentRepo.On("ListPaymentInstancesSince", ctx, []string{software.ObligationID}, marchStart).
		Return([]domain.PaymentInstance{}, nil).Once()
	// No CAD/CRC rate; resolution goes CAD -> USD -> CRC.
	suite.mockRateRepo.On("ListRatesForOwner", ctx, suite.ownerID).
		Return([]domain.ExchangeRate{
			{FromCurrencyCode: domain.CAD, ToCurrencyCode: domain.USD, RateType: domain.RateTypeBuy, Rate: decimal.NewFromFloat(0.74)},
			{FromCurrencyCode: domain.USD, ToCurrencyCode: domain.CRC, RateType: domain.RateTypeBuy, Rate: decimal.NewFromInt(500)},
		}, nil).Once()

	summary, err := suite.service.DashboardSummary(ctx, suite.ownerID, now)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), summary.Obligations, 1)
	row := summary.Obligations[0]
	assert.Equal(suite.T(), string(fx.MethodChain), row.Method)
	assert.Equal(suite.T(), []string{"CAD", "USD", "CRC"}, row.Chain)
	// 100 CAD * 0.74 = 74.00 USD, * 500 = 37,000.00 CRC.
	assert.Equal(suite.T(), int64(3700000), row.Converted.MinorUnits)
	assert.Empty(suite.T(), summary.Warnings)
	assert.Equal(suite.T(), int64(3700000), summary.TotalUnpaid.MinorUnits)
	assert.Equal(suite.T(), int64(0), summary.TotalPaid.MinorUnits)
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_Empty() {
	ctx := context.Background()

	suite.mockObligationRepo.On("ListObligationsByOwner", ctx, suite.ownerID).
		Return([]domain.Obligation{}, nil).Once()
	suite.mockRateRepo.On("ListRatesForOwner", ctx, suite.ownerID).
		Return([]domain.ExchangeRate{}, nil).Once()

	summary, err := suite.service.DashboardSummary(ctx, suite.ownerID, time.Now())

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), summary.Obligations)
	assert.Empty(suite.T(), summary.Warnings)
	assert.Equal(suite.T(), int64(0), summary.TotalDue.MinorUnits)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "ListPaymentInstancesSince")
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
