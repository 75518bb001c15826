package domain

// User represents an application user. Obligations and owner-scoped exchange
// rates reference the UserID.
type User struct {
	UserID         string `json:"userID"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	HashedPassword string `json:"-"`
	AuditFields
}
