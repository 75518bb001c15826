package domain

import (
	"github.com/shopspring/decimal"
)

// Money is an integer amount of minor units (e.g., cents) tagged with its
// currency. Amounts are never stored or computed as floating point.
type Money struct {
	MinorUnits int64        `json:"minorUnits"`
	Currency   CurrencyCode `json:"currency"`
}

// ToMinorUnits converts a human-entered decimal amount into integer minor
// units for the given currency, rounding half away from zero. Negative
// amounts are preserved.
func ToMinorUnits(amount decimal.Decimal, code CurrencyCode) int64 {
	cur := MustCurrency(code)
	return amount.Shift(int32(cur.Precision)).Round(0).IntPart()
}

// ToDecimal converts integer minor units back into a decimal amount. It is
// the exact inverse of ToMinorUnits for values ToMinorUnits produced.
func ToDecimal(minorUnits int64, code CurrencyCode) decimal.Decimal {
	cur := MustCurrency(code)
	return decimal.New(minorUnits, -int32(cur.Precision))
}

// NewMoney builds a Money from a decimal amount.
func NewMoney(amount decimal.Decimal, code CurrencyCode) Money {
	return Money{MinorUnits: ToMinorUnits(amount, code), Currency: code}
}

// Decimal returns the amount as a decimal in major units.
func (m Money) Decimal() decimal.Decimal {
	return ToDecimal(m.MinorUnits, m.Currency)
}

// String renders the amount with the currency symbol and its precision,
// e.g. "₡500.00".
func (m Money) String() string {
	cur := MustCurrency(m.Currency)
	return cur.Symbol + m.Decimal().StringFixed(int32(cur.Precision))
}
