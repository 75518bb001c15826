package services

import (
	"context"

	"github.com/budgetcr/budget_backend/internal/core/domain"
)

// CurrencySvcFacade exposes the compiled-in currency registry. The set is
// fixed at build time; there is no create operation.
type CurrencySvcFacade interface {
	ListCurrencies(ctx context.Context) []domain.Currency
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
}
