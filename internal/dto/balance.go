package dto

import (
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/identity"
)

// DebtResponse is the outstanding amount on one edge.
type DebtResponse struct {
	GroupID  string `json:"groupID"`
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
	Amount   int64  `json:"amount"`
}

// CounterpartyResponse pairs the other side of an edge with its amount.
type CounterpartyResponse struct {
	AccountID string `json:"accountID"`
	Amount    int64  `json:"amount"`
}

// CounterpartiesResponse lists a member's debts or credits.
type CounterpartiesResponse struct {
	GroupID        string                 `json:"groupID"`
	AccountID      string                 `json:"accountID"`
	Counterparties []CounterpartyResponse `json:"counterparties"`
}

func toCounterparties(cs []domain.Counterparty) []CounterpartyResponse {
	out := make([]CounterpartyResponse, len(cs))
	for i, c := range cs {
		out[i] = CounterpartyResponse{AccountID: identity.Checksum(c.AccountID), Amount: c.Amount}
	}
	return out
}

// ToCounterpartiesResponse converts a debt or credit listing to DTO.
func ToCounterpartiesResponse(groupID, accountID string, cs []domain.Counterparty) CounterpartiesResponse {
	return CounterpartiesResponse{
		GroupID:        groupID,
		AccountID:      identity.Checksum(accountID),
		Counterparties: toCounterparties(cs),
	}
}

// BalanceResponse summarises one member's position in a group.
type BalanceResponse struct {
	GroupID      string                 `json:"groupID"`
	AccountID    string                 `json:"accountID"`
	Debts        []CounterpartyResponse `json:"debts"`
	Credits      []CounterpartyResponse `json:"credits"`
	TotalDebts   int64                  `json:"totalDebts"`
	TotalCredits int64                  `json:"totalCredits"`
	NetBalance   int64                  `json:"netBalance"`
}

// ToBalanceResponse converts domain.BalanceInfo to DTO.
func ToBalanceResponse(b *domain.BalanceInfo) BalanceResponse {
	return BalanceResponse{
		GroupID:      b.GroupID,
		AccountID:    identity.Checksum(b.AccountID),
		Debts:        toCounterparties(b.Debts),
		Credits:      toCounterparties(b.Credits),
		TotalDebts:   b.TotalDebts,
		TotalCredits: b.TotalCredits,
		NetBalance:   b.NetBalance,
	}
}

// AuditResponse reports the result of re-deriving a group's debt edges.
type AuditResponse struct {
	*domain.AuditReport
	Consistent bool `json:"consistent"`
}

// ToAuditResponse converts domain.AuditReport to DTO.
func ToAuditResponse(r *domain.AuditReport) AuditResponse {
	return AuditResponse{AuditReport: r, Consistent: r.Consistent()}
}
