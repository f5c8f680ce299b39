package domain

import "time"

// PaymentMethod distinguishes fee-sponsored from self-paid settlements.
type PaymentMethod string

const (
	SelfPaid  PaymentMethod = "SELF_PAID"
	Sponsored PaymentMethod = "SPONSORED"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == SelfPaid || m == Sponsored
}

// Payment retires one participant's share of one expense. Created once, never mutated.
type Payment struct {
	PaymentID int64         `json:"paymentID"`
	BatchID   string        `json:"batchID"` // Shared by every payment of one settlement call
	ExpenseID int64         `json:"expenseID"`
	GroupID   string        `json:"groupID"`
	From      string        `json:"from"`
	To        string        `json:"to"`
	Amount    int64         `json:"amount"`
	Method    PaymentMethod `json:"method"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Settlement is the outcome of one settlement call.
type Settlement struct {
	BatchID         string    `json:"batchID"`
	GroupID         string    `json:"groupID"`
	Debtor          string    `json:"debtor"`
	Creditor        string    `json:"creditor"`
	RetiredExpenses []int64   `json:"retiredExpenses"`
	TotalSettled    int64     `json:"totalSettled"`
	RemainingDebt   int64     `json:"remainingDebt"`
	Payments        []Payment `json:"payments"`
}
