package domain

import (
	"slices"
	"time"
)

// Expense is an immutable record of a payment made by one account on behalf of the
// other group members. Settlement never edits it.
type Expense struct {
	ExpenseID            int64     `json:"expenseID"` // Monotonically increasing, starts at 1
	GroupID              string    `json:"groupID"`
	Payer                string    `json:"payer"`
	Merchant             string    `json:"merchant"`
	TotalAmount          int64     `json:"totalAmount"`          // Smallest currency unit
	PerParticipantAmount int64     `json:"perParticipantAmount"` // Smallest currency unit
	CurrencyCode         string    `json:"currencyCode"`
	Participants         []string  `json:"participants"` // Members at creation time minus the payer
	ReceiptRef           string    `json:"receiptRef"`
	Metadata             string    `json:"metadata"`
	CreatedAt            time.Time `json:"createdAt"`
}

// HasParticipant reports whether accountID owes a share of this expense.
func (e *Expense) HasParticipant(accountID string) bool {
	return slices.Contains(e.Participants, accountID)
}

// OwedBy reports whether debtor owes creditor a share of this expense.
func (e *Expense) OwedBy(debtor, creditor string) bool {
	return e.Payer == creditor && debtor != creditor && e.HasParticipant(debtor)
}

// NewExpense carries the caller-supplied fields of an expense.
type NewExpense struct {
	GroupID              string
	Payer                string
	Merchant             string
	TotalAmount          int64
	PerParticipantAmount int64
	CurrencyCode         string
	ReceiptRef           string
	Metadata             string
}

// ExpensePage is one page of a group's expense log. NextToken is nil on the last page.
type ExpensePage struct {
	Expenses  []Expense `json:"expenses"`
	NextToken *string   `json:"nextToken,omitempty"`
}
