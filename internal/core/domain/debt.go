package domain

// DebtKey identifies a debt edge: what Debtor owes Creditor inside GroupID.
type DebtKey struct {
	GroupID  string
	Debtor   string
	Creditor string
}

// DebtEdge is the outstanding amount on one edge. It is derived state and never negative.
type DebtEdge struct {
	DebtKey
	Amount int64
}

// Counterparty pairs the other side of an edge with the amount outstanding on it.
type Counterparty struct {
	AccountID string `json:"accountID"`
	Amount    int64  `json:"amount"`
}
