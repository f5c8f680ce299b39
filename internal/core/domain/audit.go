package domain

import "time"

// EdgeDiscrepancy is a debt edge whose stored value differs from the value
// reconstructed from the expense and payment logs.
type EdgeDiscrepancy struct {
	DebtKey
	Stored        int64 `json:"stored"`
	Reconstructed int64 `json:"reconstructed"`
}

// AuditReport is the result of re-deriving a group's debt edges.
type AuditReport struct {
	GroupID       string            `json:"groupID"`
	ExpenseCount  int               `json:"expenseCount"`
	PaymentCount  int               `json:"paymentCount"`
	EdgeCount     int               `json:"edgeCount"`
	Discrepancies []EdgeDiscrepancy `json:"discrepancies"`
	CheckedAt     time.Time         `json:"checkedAt"`
}

// Consistent reports whether every stored edge matched its reconstruction.
func (r *AuditReport) Consistent() bool {
	return len(r.Discrepancies) == 0
}

// LedgerSnapshot is a consistent read of one group's logs and derived edges.
type LedgerSnapshot struct {
	Expenses []Expense
	Payments []Payment
	Edges    []DebtEdge
}
