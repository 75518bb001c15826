package domain

import "time"

// PaymentInstance records that an obligation was paid for one period. At most
// one instance may exist per (ObligationID, PeriodStart); the persistence
// layer enforces this with a uniqueness constraint.
type PaymentInstance struct {
	PaymentInstanceID string    `json:"paymentInstanceID"`
	ObligationID      string    `json:"obligationID"`
	PeriodStart       time.Time `json:"periodStart"` // canonical UTC period start
	Amount            Money     `json:"amount"`
	PaidAt            time.Time `json:"paidAt"`
	AuditFields
}
