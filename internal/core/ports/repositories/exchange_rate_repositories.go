package repositories

import (
	"context"

	"github.com/budgetcr/budget_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// FindLatestExchangeRate retrieves the most recent rate for a pair,
	// preferring owner-scoped rows over global ones. An empty rateType
	// matches any type.
	FindLatestExchangeRate(ctx context.Context, from, to domain.CurrencyCode, rateType domain.RateType, ownerID string) (*domain.ExchangeRate, error)

	// ListRatesForOwner returns the rate snapshot visible to an owner
	// (owner-scoped plus global rows), ordered owner-first and then most
	// recent effective date first, ready for fx.BuildRateTable.
	ListRatesForOwner(ctx context.Context, ownerID string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data.
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
