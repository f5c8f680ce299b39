package domain

// BalanceInfo summarises one member's position inside a group.
type BalanceInfo struct {
	GroupID      string         `json:"groupID"`
	AccountID    string         `json:"accountID"`
	Debts        []Counterparty `json:"debts"`   // What AccountID owes
	Credits      []Counterparty `json:"credits"` // What is owed to AccountID
	TotalDebts   int64          `json:"totalDebts"`
	TotalCredits int64          `json:"totalCredits"`
	NetBalance   int64          `json:"netBalance"` // TotalCredits - TotalDebts
}
