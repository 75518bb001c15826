package fx_test

import (
	"testing"

	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/budgetcr/budget_backend/internal/core/fx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableOf(entries map[fx.RateKey]string) fx.RateTable {
	table := make(fx.RateTable, len(entries))
	for key, rate := range entries {
		table[key] = decimal.RequireFromString(rate)
	}
	return table
}

func TestConvert_Identity(t *testing.T) {
	amount := domain.Money{MinorUnits: 12345, Currency: domain.USD}

	outcome := fx.Convert(fx.RateTable{}, amount, domain.USD)

	assert.Equal(t, fx.MethodDirect, outcome.Method)
	assert.Equal(t, amount, outcome.Amount)
	assert.Empty(t, outcome.Chain)
}

func TestConvert_UsesBuyRateIntoBaseCurrency(t *testing.T) {
	table := tableOf(map[fx.RateKey]string{
		{From: domain.USD, To: domain.CRC, Type: domain.RateTypeBuy}:  "500",
		{From: domain.USD, To: domain.CRC, Type: domain.RateTypeSell}: "520",
	})

	// 100 USD into the base currency must use the Buy side.
	outcome := fx.Convert(table, domain.Money{MinorUnits: 10000, Currency: domain.USD}, domain.CRC)

	assert.Equal(t, fx.MethodDirect, outcome.Method)
	assert.Equal(t, domain.Money{MinorUnits: 5000000, Currency: domain.CRC}, outcome.Amount)
}

func TestConvert_UsesSellRateOutOfBaseCurrency(t *testing.T) {
	table := tableOf(map[fx.RateKey]string{
		{From: domain.CRC, To: domain.USD, Type: domain.RateTypeBuy}:  "0.0019",
		{From: domain.CRC, To: domain.USD, Type: domain.RateTypeSell}: "0.002",
	})

	// 50000 CRC out of the base currency must use the Sell side.
	outcome := fx.Convert(table, domain.Money{MinorUnits: 5000000, Currency: domain.CRC}, domain.USD)

	assert.Equal(t, fx.MethodDirect, outcome.Method)
	assert.Equal(t, domain.Money{MinorUnits: 10000, Currency: domain.USD}, outcome.Amount)
}

func TestConvert_FallsBackToLegacyRate(t *testing.T) {
	table := tableOf(map[fx.RateKey]string{
		{From: domain.USD, To: domain.CRC, Type: domain.RateTypeLegacy}: "515",
	})

	outcome := fx.Convert(table, domain.Money{MinorUnits: 10000, Currency: domain.USD}, domain.CRC)

	assert.Equal(t, fx.MethodDirect, outcome.Method)
	assert.Equal(t, int64(5150000), outcome.Amount.MinorUnits)
}

func TestConvert_ReversedRateIsInvertedAndReportedDirect(t *testing.T) {
	// Only the opposite direction exists: converting USD into the base
	// currency (Buy) falls back to the base currency's Sell rate, inverted.
	table := tableOf(map[fx.RateKey]string{
		{From: domain.CRC, To: domain.USD, Type: domain.RateTypeSell}: "0.002",
	})

	outcome := fx.Convert(table, domain.Money{MinorUnits: 10000, Currency: domain.USD}, domain.CRC)

	assert.Equal(t, fx.MethodDirect, outcome.Method)
	assert.Equal(t, domain.Money{MinorUnits: 5000000, Currency: domain.CRC}, outcome.Amount)
}

func TestConvert_RateDirectionAsymmetry(t *testing.T) {
	table := tableOf(map[fx.RateKey]string{
		{From: domain.USD, To: domain.CRC, Type: domain.RateTypeBuy}: "500",
	})

	// 100 USD -> CRC via the Buy rate.
	into := fx.Convert(table, domain.Money{MinorUnits: 10000, Currency: domain.USD}, domain.CRC)
	require.Equal(t, fx.MethodDirect, into.Method)
	assert.Equal(t, int64(5000000), into.Amount.MinorUnits)

	// 100 CRC -> USD only resolves by inverting that same Buy rate.
	outOf := fx.Convert(table, domain.Money{MinorUnits: 10000, Currency: domain.CRC}, domain.USD)
	require.Equal(t, fx.MethodDirect, outOf.Method)
	assert.Equal(t, int64(20), outOf.Amount.MinorUnits)
}

func TestConvert_ChainFallback(t *testing.T) {
	// No USD->CRC rate in either direction; only USD->CAD and CAD->CRC.
	table := tableOf(map[fx.RateKey]string{
		{From: domain.USD, To: domain.CAD, Type: domain.RateTypeBuy}: "1.35",
		{From: domain.CAD, To: domain.CRC, Type: domain.RateTypeBuy}: "370",
	})

	outcome := fx.Convert(table, domain.Money{MinorUnits: 10000, Currency: domain.USD}, domain.CRC)

	require.Equal(t, fx.MethodChain, outcome.Method)
	assert.Equal(t, []domain.CurrencyCode{domain.USD, domain.CAD, domain.CRC}, outcome.Chain)
	// 100 USD -> 135 CAD -> 49950 CRC, composing the two legs exactly.
	assert.Equal(t, domain.Money{MinorUnits: 4995000, Currency: domain.CRC}, outcome.Amount)
}

func TestConvert_ChainPicksFirstIntermediateInEnumerationOrder(t *testing.T) {
	// Both EUR and CAD could bridge USD->CRC; EUR precedes CAD in the
	// currency enumeration so it must win. No best-rate search.
	table := tableOf(map[fx.RateKey]string{
		{From: domain.USD, To: domain.EUR, Type: domain.RateTypeBuy}: "0.9",
		{From: domain.EUR, To: domain.CRC, Type: domain.RateTypeBuy}: "560",
		{From: domain.USD, To: domain.CAD, Type: domain.RateTypeBuy}: "1.35",
		{From: domain.CAD, To: domain.CRC, Type: domain.RateTypeBuy}: "370",
	})

	outcome := fx.Convert(table, domain.Money{MinorUnits: 10000, Currency: domain.USD}, domain.CRC)

	require.Equal(t, fx.MethodChain, outcome.Method)
	assert.Equal(t, []domain.CurrencyCode{domain.USD, domain.EUR, domain.CRC}, outcome.Chain)
	assert.Equal(t, int64(5040000), outcome.Amount.MinorUnits)
}

func TestConvert_ChainLegsResolveThroughReversedRates(t *testing.T) {
	// Each chain leg runs the full direct/reverse fallback independently.
	table := tableOf(map[fx.RateKey]string{
		{From: domain.CAD, To: domain.USD, Type: domain.RateTypeLegacy}: "0.8",
		{From: domain.CAD, To: domain.CRC, Type: domain.RateTypeBuy}:    "370",
	})

	outcome := fx.Convert(table, domain.Money{MinorUnits: 10000, Currency: domain.USD}, domain.CRC)

	require.Equal(t, fx.MethodChain, outcome.Method)
	assert.Equal(t, []domain.CurrencyCode{domain.USD, domain.CAD, domain.CRC}, outcome.Chain)
	// 100 USD -> 125 CAD (1/0.8) -> 46250 CRC.
	assert.Equal(t, int64(4625000), outcome.Amount.MinorUnits)
}

func TestConvert_UnresolvedKeepsOriginalAmount(t *testing.T) {
	amount := domain.Money{MinorUnits: 10000, Currency: domain.USD}

	outcome := fx.Convert(fx.RateTable{}, amount, domain.CRC)

	assert.Equal(t, fx.MethodUnresolved, outcome.Method)
	assert.Equal(t, amount, outcome.Amount)
	assert.Contains(t, outcome.Reason, "USD")
	assert.Contains(t, outcome.Reason, "CRC")
}

func TestConvert_NegativeAmountsArePreserved(t *testing.T) {
	table := tableOf(map[fx.RateKey]string{
		{From: domain.USD, To: domain.CRC, Type: domain.RateTypeBuy}: "500",
	})

	outcome := fx.Convert(table, domain.Money{MinorUnits: -10000, Currency: domain.USD}, domain.CRC)

	assert.Equal(t, int64(-5000000), outcome.Amount.MinorUnits)
}
