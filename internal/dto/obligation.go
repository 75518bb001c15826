package dto

import (
	"time"

	"github.com/budgetcr/budget_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateObligationRequest defines the structure for creating a recurring obligation.
type CreateObligationRequest struct {
	Name         string          `json:"name" binding:"required,max=100"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
	Cadence      string          `json:"cadence" binding:"required,cadence"`
}

// UpdateObligationRequest defines a partial update; nil fields are left unchanged.
type UpdateObligationRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=100"`
	Amount       *decimal.Decimal `json:"amount" binding:"omitempty"`
	CurrencyCode *string          `json:"currencyCode" binding:"omitempty,currencycode"`
	Cadence      *string          `json:"cadence" binding:"omitempty,cadence"`
}

// MarkPaidRequest optionally overrides the amount recorded on the payment
// instance; when omitted the obligation's configured amount is used.
type MarkPaidRequest struct {
	Amount       *decimal.Decimal `json:"amount" binding:"omitempty"`
	CurrencyCode *string          `json:"currencyCode" binding:"omitempty,currencycode"`
}

// ObligationResponse defines API responses containing obligation details.
type ObligationResponse struct {
	ObligationID string        `json:"obligationID"`
	Name         string        `json:"name"`
	Amount       MoneyResponse `json:"amount"`
	Cadence      string        `json:"cadence"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// PaymentInstanceResponse defines API responses for a recorded payment.
type PaymentInstanceResponse struct {
	PaymentInstanceID string        `json:"paymentInstanceID"`
	ObligationID      string        `json:"obligationID"`
	PeriodStart       time.Time     `json:"periodStart"`
	Amount            MoneyResponse `json:"amount"`
	PaidAt            time.Time     `json:"paidAt"`
}

// PaidStatusResponse reports whether an obligation is paid for the period
// enclosing the requested instant.
type PaidStatusResponse struct {
	ObligationID string    `json:"obligationID"`
	Paid         bool      `json:"paid"`
	PeriodStart  time.Time `json:"periodStart"`
	PeriodEnd    time.Time `json:"periodEnd"`
	PeriodLabel  string    `json:"periodLabel"`
}

// ToObligationResponse converts a domain.Obligation to its response DTO.
func ToObligationResponse(o *domain.Obligation) ObligationResponse {
	return ObligationResponse{
		ObligationID: o.ObligationID,
		Name:         o.Name,
		Amount:       ToMoneyResponse(o.Amount),
		Cadence:      string(o.Cadence),
		CreatedAt:    o.CreatedAt,
	}
}

// ToListObligationResponse converts a slice of obligations to response DTOs.
func ToListObligationResponse(obligations []domain.Obligation) []ObligationResponse {
	responses := make([]ObligationResponse, len(obligations))
	for i := range obligations {
		responses[i] = ToObligationResponse(&obligations[i])
	}
	return responses
}

// ToPaymentInstanceResponse converts a domain.PaymentInstance to its response DTO.
func ToPaymentInstanceResponse(p *domain.PaymentInstance) PaymentInstanceResponse {
	return PaymentInstanceResponse{
		PaymentInstanceID: p.PaymentInstanceID,
		ObligationID:      p.ObligationID,
		PeriodStart:       p.PeriodStart,
		Amount:            ToMoneyResponse(p.Amount),
		PaidAt:            p.PaidAt,
	}
}
