package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/identity"
)

// --- Expense DTOs ---

// CreateExpenseRequest defines data for recording an expense paid by the caller.
// Amounts are in the smallest currency unit.
type CreateExpenseRequest struct {
	Merchant             string `json:"merchant" binding:"max=256"`
	TotalAmount          int64  `json:"totalAmount" binding:"required,gt=0"`
	PerParticipantAmount int64  `json:"perParticipantAmount" binding:"required,gt=0"`
	CurrencyCode         string `json:"currencyCode" binding:"required,currency_code"`
	ReceiptRef           string `json:"receiptRef" binding:"max=512"`
	Metadata             string `json:"metadata" binding:"max=4096"`
}

// ToNewExpense converts the request into the domain input for groupID and payer.
func (r CreateExpenseRequest) ToNewExpense(groupID, payer string) domain.NewExpense {
	return domain.NewExpense{
		GroupID:              groupID,
		Payer:                payer,
		Merchant:             strings.TrimSpace(r.Merchant),
		TotalAmount:          r.TotalAmount,
		PerParticipantAmount: r.PerParticipantAmount,
		CurrencyCode:         r.CurrencyCode,
		ReceiptRef:           r.ReceiptRef,
		Metadata:             r.Metadata,
	}
}

// ExpenseResponse defines data returned for an expense.
type ExpenseResponse struct {
	ExpenseID            int64     `json:"expenseID"`
	GroupID              string    `json:"groupID"`
	Payer                string    `json:"payer"`
	Merchant             string    `json:"merchant"`
	TotalAmount          int64     `json:"totalAmount"`
	PerParticipantAmount int64     `json:"perParticipantAmount"`
	CurrencyCode         string    `json:"currencyCode"`
	DisplayTotal         string    `json:"displayTotal"` // Major units, e.g. "30.00"
	DisplayShare         string    `json:"displayShare"`
	Participants         []string  `json:"participants"`
	ReceiptRef           string    `json:"receiptRef,omitempty"`
	Metadata             string    `json:"metadata,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// ToExpenseResponse converts domain.Expense to DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	participants := make([]string, len(e.Participants))
	for i, p := range e.Participants {
		participants[i] = identity.Checksum(p)
	}
	return ExpenseResponse{
		ExpenseID:            e.ExpenseID,
		GroupID:              e.GroupID,
		Payer:                identity.Checksum(e.Payer),
		Merchant:             e.Merchant,
		TotalAmount:          e.TotalAmount,
		PerParticipantAmount: e.PerParticipantAmount,
		CurrencyCode:         e.CurrencyCode,
		DisplayTotal:         FormatAmount(e.TotalAmount, e.CurrencyCode),
		DisplayShare:         FormatAmount(e.PerParticipantAmount, e.CurrencyCode),
		Participants:         participants,
		ReceiptRef:           e.ReceiptRef,
		Metadata:             e.Metadata,
		CreatedAt:            e.CreatedAt,
	}
}

// ListExpensesParams defines the optional paging of an expense listing.
type ListExpensesParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"next_token"`
}

// Paged reports whether the caller asked for a page rather than the whole log.
func (p ListExpensesParams) Paged() bool {
	return p.Limit > 0 || p.NextToken != nil
}

// ListExpensesResponse wraps a list of expenses in creation order.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListExpensesResponse converts a slice of domain.Expense to DTO.
func ToListExpensesResponse(es []domain.Expense) ListExpensesResponse {
	list := make([]ExpenseResponse, len(es))
	for i := range es {
		list[i] = ToExpenseResponse(&es[i])
	}
	return ListExpensesResponse{Expenses: list}
}

// ToExpensePageResponse converts domain.ExpensePage to DTO.
func ToExpensePageResponse(p *domain.ExpensePage) ListExpensesResponse {
	resp := ToListExpensesResponse(p.Expenses)
	resp.NextToken = p.NextToken
	return resp
}
