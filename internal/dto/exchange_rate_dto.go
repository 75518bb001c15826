package dto

import (
	"time"

	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/budgetcr/budget_backend/internal/core/fx"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
// An empty RateType records a legacy untyped rate for the pair.
type CreateExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currencycode"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currencycode"`
	RateType         string          `json:"rateType" binding:"omitempty,oneof=BUY SELL"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	DateEffective    time.Time       `json:"dateEffective" binding:"required"`
	Global           bool            `json:"global"` // false scopes the rate to the creator
}

// ExchangeRateResponse defines API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	RateType         string          `json:"rateType,omitempty"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	OwnerID          string          `json:"ownerID,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// ConversionResponse is the API shape of a conversion outcome.
type ConversionResponse struct {
	Amount MoneyResponse `json:"amount"`
	Method string        `json:"method"`
	Chain  []string      `json:"chain,omitempty"`
	Reason string        `json:"reason,omitempty"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its response DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: string(rate.FromCurrencyCode),
		ToCurrencyCode:   string(rate.ToCurrencyCode),
		RateType:         string(rate.RateType),
		Rate:             rate.Rate,
		DateEffective:    rate.DateEffective,
		OwnerID:          rate.OwnerID,
		CreatedAt:        rate.CreatedAt,
		CreatedBy:        rate.CreatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of rates to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// ToConversionResponse converts an fx.ConversionOutcome to its response DTO.
func ToConversionResponse(outcome fx.ConversionOutcome) ConversionResponse {
	resp := ConversionResponse{
		Amount: ToMoneyResponse(outcome.Amount),
		Method: string(outcome.Method),
		Reason: outcome.Reason,
	}
	for _, code := range outcome.Chain {
		resp.Chain = append(resp.Chain, string(code))
	}
	return resp
}
