package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// ExpenseReader defines read operations on the expense log
type ExpenseReader interface {
	// FindExpenseByID returns apperrors.ErrExpenseNotFound when the id is unknown.
	FindExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error)

	// ListExpensesByGroupID returns every expense of the group ordered by id.
	ListExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error)

	// ListExpensesPage returns at most limit expenses of the group with an id greater
	// than afterID, ordered by id.
	ListExpensesPage(ctx context.Context, groupID string, afterID int64, limit int) ([]domain.Expense, error)
}

// DebtReader defines read operations on the derived debt edges.
// Zero edges are never returned.
type DebtReader interface {
	// FindDebt returns the outstanding amount of one edge, 0 if none.
	FindDebt(ctx context.Context, key domain.DebtKey) (int64, error)

	// ListDebtsByDebtor returns the creditors accountID owes, ordered by counterparty.
	ListDebtsByDebtor(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error)

	// ListDebtsByCreditor returns the debtors owing accountID, ordered by counterparty.
	ListDebtsByCreditor(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error)

	// ListGroupDebts returns every non-zero edge of the group.
	ListGroupDebts(ctx context.Context, groupID string) ([]domain.DebtEdge, error)
}

// PaymentReader defines read operations on the payment log
type PaymentReader interface {
	ListPaymentsByGroupID(ctx context.Context, groupID string) ([]domain.Payment, error)
	ListPaymentsByExpenseID(ctx context.Context, expenseID int64) ([]domain.Payment, error)
}

// LedgerTx is a unit of work over the expense log, the payment log and the debt edges.
// Everything done through it becomes visible together or not at all.
type LedgerTx interface {
	// InsertExpense appends an expense, assigning its id.
	InsertExpense(ctx context.Context, expense domain.NewExpense, participants []string, createdAt time.Time) (*domain.Expense, error)

	// AccrueDebts adds amount to the edge (groupID, debtor, creditor) for each debtor.
	// Edges are touched in ascending debtor order.
	AccrueDebts(ctx context.Context, groupID, creditor string, debtors []string, amount int64) error

	// LockDebt reads an edge and holds it exclusively until the unit of work ends.
	LockDebt(ctx context.Context, key domain.DebtKey) (int64, error)

	// DecrementDebt lowers a locked edge. It never lets the edge go below zero and
	// returns apperrors.ErrDebtMismatch instead.
	DecrementDebt(ctx context.Context, key domain.DebtKey, amount int64) error

	// ListCreditorExpenses returns the group's expenses paid by creditor, ordered by id.
	ListCreditorExpenses(ctx context.Context, groupID, creditor string) ([]domain.Expense, error)

	// FindExpenseByID reads an expense inside the unit of work.
	FindExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error)

	// RetiredExpenseIDs returns the expenses debtor has already paid to creditor.
	RetiredExpenseIDs(ctx context.Context, groupID, debtor, creditor string) (map[int64]bool, error)

	// InsertPayments appends payments, assigning their ids. A second payment for the
	// same (expense, from) pair fails with apperrors.ErrAlreadySettled.
	InsertPayments(ctx context.Context, payments []domain.Payment) ([]domain.Payment, error)
}

// LedgerStore is the persistence port behind expenses, debts and payments.
type LedgerStore interface {
	ExpenseReader
	DebtReader
	PaymentReader

	// GroupSnapshot reads a group's expenses, payments and edges as of one point in time.
	GroupSnapshot(ctx context.Context, groupID string) (*domain.LedgerSnapshot, error)

	// WithinTx runs fn in one unit of work. It commits when fn returns nil and
	// rolls back otherwise, returning fn's error unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
