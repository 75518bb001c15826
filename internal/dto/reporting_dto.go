package dto

import "time"

// ConversionWarning surfaces one unresolved currency pair to the user. The
// dashboard deduplicates warnings by (from, to) pair.
type ConversionWarning struct {
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	Reason       string `json:"reason"`
}

// ObligationSummary is one dashboard row: the obligation, its amount
// converted to the base currency, and its paid status for the current period.
type ObligationSummary struct {
	ObligationID string        `json:"obligationID"`
	Name         string        `json:"name"`
	Cadence      string        `json:"cadence"`
	Amount       MoneyResponse `json:"amount"`
	Converted    MoneyResponse `json:"converted"`
	Method       string        `json:"method"`
	Chain        []string      `json:"chain,omitempty"`
	Paid         bool          `json:"paid"`
	PeriodStart  time.Time     `json:"periodStart"`
	PeriodEnd    time.Time     `json:"periodEnd"`
	PeriodLabel  string        `json:"periodLabel"`
}

// DashboardSummaryResponse aggregates an owner's obligations for display.
// Totals are in the base currency; unresolved conversions contribute their
// original amount and a warning instead of failing the aggregate.
type DashboardSummaryResponse struct {
	BaseCurrency string              `json:"baseCurrency"`
	TotalDue     MoneyResponse       `json:"totalDue"`
	TotalPaid    MoneyResponse       `json:"totalPaid"`
	TotalUnpaid  MoneyResponse       `json:"totalUnpaid"`
	Obligations  []ObligationSummary `json:"obligations"`
	Warnings     []ConversionWarning `json:"warnings,omitempty"`
}
