package fx

import (
	"fmt"

	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionMethod tags how a conversion result was obtained.
type ConversionMethod string

const (
	// MethodDirect covers both forward and reversed single-rate hits.
	// Downstream warning semantics only distinguish Chain and Unresolved.
	MethodDirect     ConversionMethod = "DIRECT"
	MethodChain      ConversionMethod = "CHAIN"
	MethodUnresolved ConversionMethod = "UNRESOLVED"
)

// ConversionOutcome is the result of resolving one amount into another
// currency. On MethodUnresolved, Amount carries the original value unchanged
// and Reason explains the failure; callers surface it as a warning rather
// than failing the overall computation.
type ConversionOutcome struct {
	Amount domain.Money          `json:"amount"`
	Method ConversionMethod      `json:"method"`
	Chain  []domain.CurrencyCode `json:"chain,omitempty"`
	Reason string                `json:"reason,omitempty"`
}

var one = decimal.NewFromInt(1)

// Convert resolves amount into toCurrency against the given rate table.
// Resolution order: identity, direct rate (typed then legacy), reversed rate
// (opposite type then legacy, inverted), then chain conversion through each
// other supported currency in enumeration order. Convert is pure and never
// fails; total resolution failure is reported as MethodUnresolved.
func Convert(table RateTable, amount domain.Money, toCurrency domain.CurrencyCode) ConversionOutcome {
	from := amount.Currency
	if from == toCurrency {
		return ConversionOutcome{Amount: amount, Method: MethodDirect}
	}

	if rate, ok := lookupRate(table, from, toCurrency, rateTypeFor(from, toCurrency)); ok {
		return ConversionOutcome{
			Amount: applyRate(amount, toCurrency, rate),
			Method: MethodDirect,
		}
	}

	for _, cur := range domain.SupportedCurrencies() {
		mid := cur.CurrencyCode
		if mid == from || mid == toCurrency {
			continue
		}
		firstLeg, ok := lookupRate(table, from, mid, rateTypeFor(from, mid))
		if !ok {
			continue
		}
		secondLeg, ok := lookupRate(table, mid, toCurrency, rateTypeFor(mid, toCurrency))
		if !ok {
			continue
		}
		converted := applyRate(applyRate(amount, mid, firstLeg), toCurrency, secondLeg)
		return ConversionOutcome{
			Amount: converted,
			Method: MethodChain,
			Chain:  []domain.CurrencyCode{from, mid, toCurrency},
		}
	}

	return ConversionOutcome{
		Amount: amount,
		Method: MethodUnresolved,
		Reason: fmt.Sprintf("no exchange rate available from %s to %s", from, toCurrency),
	}
}

// rateTypeFor picks the spread side for a conversion direction: into the base
// currency uses the Buy rate, out of it the Sell rate, and cross-foreign
// conversions default to Buy. Using the wrong side would silently produce a
// financially incorrect amount, not an error.
func rateTypeFor(from, to domain.CurrencyCode) domain.RateType {
	if to == domain.BaseCurrency {
		return domain.RateTypeBuy
	}
	if from == domain.BaseCurrency {
		return domain.RateTypeSell
	}
	return domain.RateTypeBuy
}

// lookupRate resolves a single rate for (from, to) with the given type.
// Fallback order: direct typed, direct legacy, reverse with the opposite type
// (inverted), reverse legacy (inverted).
func lookupRate(table RateTable, from, to domain.CurrencyCode, rateType domain.RateType) (decimal.Decimal, bool) {
	if rate, ok := table[RateKey{From: from, To: to, Type: rateType}]; ok {
		return rate, true
	}
	if rate, ok := table[RateKey{From: from, To: to, Type: domain.RateTypeLegacy}]; ok {
		return rate, true
	}
	if rate, ok := table[RateKey{From: to, To: from, Type: rateType.Opposite()}]; ok {
		return one.Div(rate), true
	}
	if rate, ok := table[RateKey{From: to, To: from, Type: domain.RateTypeLegacy}]; ok {
		return one.Div(rate), true
	}
	return decimal.Decimal{}, false
}

// applyRate converts amount into toCurrency with the given rate, rounding to
// the target currency's minor unit.
func applyRate(amount domain.Money, toCurrency domain.CurrencyCode, rate decimal.Decimal) domain.Money {
	converted := amount.Decimal().Mul(rate)
	return domain.Money{
		MinorUnits: domain.ToMinorUnits(converted, toCurrency),
		Currency:   toCurrency,
	}
}
