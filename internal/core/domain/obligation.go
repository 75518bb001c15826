package domain

// Cadence is the repeating interval governing when a recurring obligation's
// current period resets.
type Cadence string

const (
	CadenceMonthly  Cadence = "MONTHLY"
	CadenceWeekly   Cadence = "WEEKLY"
	CadenceBiweekly Cadence = "BIWEEKLY"
)

// Valid reports whether c is a known cadence.
func (c Cadence) Valid() bool {
	switch c {
	case CadenceMonthly, CadenceWeekly, CadenceBiweekly:
		return true
	}
	return false
}

// Obligation is a recurring payment or subscription tracked for due/paid
// status, e.g. rent or a streaming service.
type Obligation struct {
	ObligationID string  `json:"obligationID"`
	OwnerID      string  `json:"ownerID"`
	Name         string  `json:"name"`
	Amount       Money   `json:"amount"`
	Cadence      Cadence `json:"cadence"`
	AuditFields
}
