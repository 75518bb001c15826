package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateType distinguishes the two sides of a bank's exchange spread. A rate
// without an explicit type (RateTypeLegacy) acts as the pair's default.
type RateType string

const (
	RateTypeBuy  RateType = "BUY"
	RateTypeSell RateType = "SELL"
	// RateTypeLegacy marks rates recorded before buy/sell were split.
	RateTypeLegacy RateType = ""
)

// Opposite returns the economically inverse side: a Buy rate in one direction
// is a Sell rate the other way. Legacy stays legacy.
func (t RateType) Opposite() RateType {
	switch t {
	case RateTypeBuy:
		return RateTypeSell
	case RateTypeSell:
		return RateTypeBuy
	default:
		return RateTypeLegacy
	}
}

// Valid reports whether t is one of the known rate types.
func (t RateType) Valid() bool {
	return t == RateTypeBuy || t == RateTypeSell || t == RateTypeLegacy
}

// ExchangeRate stores the conversion rate between two currencies effective
// from a given date. Rates may be scoped to an owner (OwnerID set) or global
// (OwnerID empty); owner rates take precedence during table construction.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode CurrencyCode    `json:"fromCurrencyCode"`
	ToCurrencyCode   CurrencyCode    `json:"toCurrencyCode"`
	RateType         RateType        `json:"rateType,omitempty"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	OwnerID          string          `json:"ownerID,omitempty"` // empty = global
	AuditFields
}
