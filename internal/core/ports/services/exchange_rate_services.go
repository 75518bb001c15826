package services

import (
	"context"

	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/budgetcr/budget_backend/internal/core/fx"
	"github.com/budgetcr/budget_backend/internal/dto"
)

// ExchangeRateReaderSvc defines rate lookup operations.
type ExchangeRateReaderSvc interface {
	GetLatestExchangeRate(ctx context.Context, fromCode, toCode, rateType, ownerID string) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context, ownerID string) ([]domain.ExchangeRate, error)
}

// ExchangeRateConverterSvc builds rate snapshots and resolves conversions.
type ExchangeRateConverterSvc interface {
	// BuildRateTable fetches the rate snapshot visible to ownerID and builds
	// the deduplicated lookup table.
	BuildRateTable(ctx context.Context, ownerID string) (fx.RateTable, error)

	// ConvertAmount resolves amount into toCurrency for ownerID. Resolution
	// failure is reported in the outcome, not as an error.
	ConvertAmount(ctx context.Context, ownerID string, amount domain.Money, toCurrency domain.CurrencyCode) (fx.ConversionOutcome, error)
}

// ExchangeRateSvcFacade combines all exchange rate service interfaces.
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateConverterSvc
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}
