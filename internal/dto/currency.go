package dto

import (
	"github.com/budgetcr/budget_backend/internal/core/domain"
)

// CurrencyResponse describes one entry of the compiled-in currency registry.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Precision    int    `json:"precision"`
}

// MoneyResponse is the API shape of a monetary amount: integer minor units
// plus a preformatted display string.
type MoneyResponse struct {
	MinorUnits int64  `json:"minorUnits"`
	Currency   string `json:"currency"`
	Display    string `json:"display"`
}

// ToCurrencyResponse converts a domain.Currency to its response DTO.
func ToCurrencyResponse(c domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: string(c.CurrencyCode),
		Name:         c.Name,
		Symbol:       c.Symbol,
		Precision:    c.Precision,
	}
}

// ToListCurrencyResponse converts a slice of currencies to response DTOs.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		responses[i] = ToCurrencyResponse(c)
	}
	return responses
}

// ToMoneyResponse converts a domain.Money to its response DTO.
func ToMoneyResponse(m domain.Money) MoneyResponse {
	return MoneyResponse{
		MinorUnits: m.MinorUnits,
		Currency:   string(m.Currency),
		Display:    m.String(),
	}
}
