package dto

import (
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/identity"
)

// --- Settlement DTOs ---

// SettleRequest defines data for settling the caller's debt to a creditor.
type SettleRequest struct {
	Creditor string `json:"creditor" binding:"required,account_id"`
	Method   string `json:"method" binding:"omitempty,oneof=SELF_PAID SPONSORED"`
}

// PayExpenseRequest defines data for marking one expense share as paid by the caller.
// The creditor defaults to the expense payer.
type PayExpenseRequest struct {
	Creditor string `json:"creditor" binding:"omitempty,account_id"`
	Method   string `json:"method" binding:"omitempty,oneof=SELF_PAID SPONSORED"`
}

// PaymentResponse defines data returned for a payment record.
type PaymentResponse struct {
	PaymentID int64     `json:"paymentID"`
	BatchID   string    `json:"batchID"`
	ExpenseID int64     `json:"expenseID"`
	GroupID   string    `json:"groupID"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPaymentResponse converts domain.Payment to DTO.
func ToPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.PaymentID,
		BatchID:   p.BatchID,
		ExpenseID: p.ExpenseID,
		GroupID:   p.GroupID,
		From:      identity.Checksum(p.From),
		To:        identity.Checksum(p.To),
		Amount:    p.Amount,
		Method:    string(p.Method),
		CreatedAt: p.CreatedAt,
	}
}

// ListPaymentsResponse wraps a list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToListPaymentsResponse converts a slice of domain.Payment to DTO.
func ToListPaymentsResponse(ps []domain.Payment) ListPaymentsResponse {
	list := make([]PaymentResponse, len(ps))
	for i, p := range ps {
		list[i] = ToPaymentResponse(p)
	}
	return ListPaymentsResponse{Payments: list}
}

// SettlementResponse defines data returned by a settlement call.
type SettlementResponse struct {
	BatchID         string            `json:"batchID"`
	GroupID         string            `json:"groupID"`
	Debtor          string            `json:"debtor"`
	Creditor        string            `json:"creditor"`
	RetiredExpenses []int64           `json:"retiredExpenses"`
	TotalSettled    int64             `json:"totalSettled"`
	RemainingDebt   int64             `json:"remainingDebt"`
	Payments        []PaymentResponse `json:"payments"`
}

// ToSettlementResponse converts domain.Settlement to DTO.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		BatchID:         s.BatchID,
		GroupID:         s.GroupID,
		Debtor:          identity.Checksum(s.Debtor),
		Creditor:        identity.Checksum(s.Creditor),
		RetiredExpenses: s.RetiredExpenses,
		TotalSettled:    s.TotalSettled,
		RemainingDebt:   s.RemainingDebt,
		Payments:        ToListPaymentsResponse(s.Payments).Payments,
	}
}
