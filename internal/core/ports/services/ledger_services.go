package services

import (
	"context"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// ExpenseSvcFacade defines operations on the expense log
type ExpenseSvcFacade interface {
	// AddExpense appends an expense paid by expense.Payer and accrues a debt from
	// every other current member to the payer, atomically.
	AddExpense(ctx context.Context, expense domain.NewExpense) (*domain.Expense, error)

	// GetExpense retrieves one expense by id.
	GetExpense(ctx context.Context, expenseID int64) (*domain.Expense, error)

	// GetGroupExpenses lists a group's expenses in creation order.
	GetGroupExpenses(ctx context.Context, groupID string) ([]domain.Expense, error)

	// ListGroupExpensesPage lists a group's expenses in creation order, limit at a time.
	// nextToken is the cursor returned with the previous page, nil for the first.
	ListGroupExpensesPage(ctx context.Context, groupID string, limit int, nextToken *string) (*domain.ExpensePage, error)
}

// DebtSvcFacade defines read operations on the debt ledger
type DebtSvcFacade interface {
	GetDebt(ctx context.Context, groupID, debtor, creditor string) (int64, error)
	GetUserDebts(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error)
	GetUserCredits(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error)
}

// SettlementSvcFacade defines operations that retire debt
type SettlementSvcFacade interface {
	// SettleBatch retires the earliest unpaid expenses debtor owes creditor that fit
	// within the outstanding debt, in one unit of work.
	SettleBatch(ctx context.Context, groupID, debtor, creditor string, method domain.PaymentMethod) (*domain.Settlement, error)

	// MarkSinglePaid retires debtor's share of one expense paid by creditor.
	MarkSinglePaid(ctx context.Context, expenseID int64, debtor, creditor string, method domain.PaymentMethod) (*domain.Settlement, error)

	// ListGroupPayments lists the payment log of a group.
	ListGroupPayments(ctx context.Context, groupID string) ([]domain.Payment, error)

	// ListExpensePayments lists the payments recorded against one expense.
	ListExpensePayments(ctx context.Context, expenseID int64) ([]domain.Payment, error)
}

// BalanceSvcFacade aggregates debts and credits for one account
type BalanceSvcFacade interface {
	// GetUserBalanceInfo drops counterparties listed in exclude as well as the
	// configured service accounts before summing.
	GetUserBalanceInfo(ctx context.Context, groupID, accountID string, exclude []string) (*domain.BalanceInfo, error)
}

// AuditSvcFacade checks the debt edges against the logs they are derived from
type AuditSvcFacade interface {
	AuditGroup(ctx context.Context, groupID string) (*domain.AuditReport, error)
}
