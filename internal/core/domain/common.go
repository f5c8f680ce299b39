package domain

import "time"

// AuditFields holds creation metadata shared by the append-only ledger records.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"` // Canonical account id of the caller
}
