package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/budgetcr/budget_backend/internal/apperrors"
	"github.com/budgetcr/budget_backend/internal/core/domain"
)

// CurrencyService serves the compiled-in currency registry. The supported
// set and its minor-unit precision are fixed at build time.
type CurrencyService struct{}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService() *CurrencyService {
	return &CurrencyService{}
}

// ListCurrencies returns the supported currencies in enumeration order.
func (s *CurrencyService) ListCurrencies(_ context.Context) []domain.Currency {
	return domain.SupportedCurrencies()
}

// GetCurrencyByCode returns the metadata for a currency code.
func (s *CurrencyService) GetCurrencyByCode(_ context.Context, code string) (*domain.Currency, error) {
	currency, ok := domain.CurrencyByCode(domain.CurrencyCode(strings.ToUpper(code)))
	if !ok {
		return nil, fmt.Errorf("%w: currency %q is not supported", apperrors.ErrNotFound, code)
	}
	return &currency, nil
}
