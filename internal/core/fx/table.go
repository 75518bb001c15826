// Package fx implements the multi-currency conversion resolver: a pure rate
// table built from an ordered rate snapshot, and a resolver that degrades
// from direct rates through reversed rates to chain conversion.
package fx

import (
	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateKey identifies one entry of a RateTable. Type is RateTypeLegacy for
// rates recorded without an explicit buy/sell side.
type RateKey struct {
	From domain.CurrencyCode
	To   domain.CurrencyCode
	Type domain.RateType
}

// RateTable maps (from, to, rateType) to a single authoritative rate. It is
// an immutable snapshot for the duration of one conversion pass.
type RateTable map[RateKey]decimal.Decimal

// BuildRateTable builds a lookup table from a rate snapshot ordered
// most-authoritative-first (owner-scoped before global, then most recent
// effective date first). The first rate seen per key wins, so the freshest
// rate with the highest precedence dominates. Non-positive rates are skipped.
func BuildRateTable(orderedRates []domain.ExchangeRate) RateTable {
	table := make(RateTable, len(orderedRates))
	for _, r := range orderedRates {
		if !r.Rate.IsPositive() {
			continue
		}
		key := RateKey{From: r.FromCurrencyCode, To: r.ToCurrencyCode, Type: r.RateType}
		if _, exists := table[key]; exists {
			continue
		}
		table[key] = r.Rate
	}
	return table
}
