package memory

import (
	"context"
	"slices"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
)

// WithinTx holds the store's write lock for the whole of fn. If fn fails, every
// change it made is undone in reverse order before the lock is released.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{s: s}
	err := fn(ctx, tx)
	if err != nil {
		tx.rollback()
	}
	tx.done = true
	return err
}

type memTx struct {
	s    *Store
	undo []func()
	done bool
}

var _ portsrepo.LedgerTx = (*memTx)(nil)

func (t *memTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *memTx) check(ctx context.Context) error {
	if t.done {
		return apperrors.NewAppError(500, "unit of work already finished", nil)
	}
	return ctx.Err()
}

func (t *memTx) InsertExpense(ctx context.Context, e domain.NewExpense, participants []string, createdAt time.Time) (*domain.Expense, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	s := t.s
	expense := domain.Expense{
		ExpenseID:            int64(len(s.expenses)) + 1,
		GroupID:              e.GroupID,
		Payer:                e.Payer,
		Merchant:             e.Merchant,
		TotalAmount:          e.TotalAmount,
		PerParticipantAmount: e.PerParticipantAmount,
		CurrencyCode:         e.CurrencyCode,
		Participants:         slices.Clone(participants),
		ReceiptRef:           e.ReceiptRef,
		Metadata:             e.Metadata,
		CreatedAt:            createdAt,
	}
	n := len(s.expenses)
	s.expenses = append(s.expenses, expense)
	t.undo = append(t.undo, func() { s.expenses = s.expenses[:n] })

	out := cloneExpense(expense)
	return &out, nil
}

func (t *memTx) AccrueDebts(ctx context.Context, groupID, creditor string, debtors []string, amount int64) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	sorted := slices.Clone(debtors)
	slices.Sort(sorted)
	for _, d := range sorted {
		key := domain.DebtKey{GroupID: groupID, Debtor: d, Creditor: creditor}
		t.set(key, t.s.debts[key]+amount)
	}
	return nil
}

func (t *memTx) LockDebt(ctx context.Context, key domain.DebtKey) (int64, error) {
	if err := t.check(ctx); err != nil {
		return 0, err
	}
	return t.s.debts[key], nil
}

func (t *memTx) DecrementDebt(ctx context.Context, key domain.DebtKey, amount int64) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	current := t.s.debts[key]
	if amount > current {
		return apperrors.NewLedgerError(apperrors.ErrDebtMismatch, key.GroupID, key.Debtor, key.Creditor, current, amount)
	}
	t.set(key, current-amount)
	return nil
}

// set writes an edge and records how to restore it. Zero edges are removed.
func (t *memTx) set(key domain.DebtKey, amount int64) {
	s := t.s
	prev, existed := s.debts[key]
	if amount == 0 {
		delete(s.debts, key)
	} else {
		s.debts[key] = amount
	}
	t.undo = append(t.undo, func() {
		if existed {
			s.debts[key] = prev
		} else {
			delete(s.debts, key)
		}
	})
}

func (t *memTx) ListCreditorExpenses(ctx context.Context, groupID, creditor string) ([]domain.Expense, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	return t.s.filterExpenses(func(e *domain.Expense) bool {
		return e.GroupID == groupID && e.Payer == creditor
	}), nil
}

func (t *memTx) FindExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	return t.s.findExpense(expenseID)
}

func (t *memTx) RetiredExpenseIDs(ctx context.Context, groupID, debtor, creditor string) (map[int64]bool, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	out := make(map[int64]bool)
	for _, p := range t.s.payments {
		if p.GroupID == groupID && p.From == debtor && p.To == creditor {
			out[p.ExpenseID] = true
		}
	}
	return out, nil
}

func (t *memTx) InsertPayments(ctx context.Context, payments []domain.Payment) ([]domain.Payment, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	s := t.s
	out := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		k := paidKey{expenseID: p.ExpenseID, from: p.From}
		if s.paid[k] {
			return nil, apperrors.ErrAlreadySettled
		}
		p.PaymentID = int64(len(s.payments)) + 1
		n := len(s.payments)
		s.payments = append(s.payments, p)
		s.paid[k] = true
		t.undo = append(t.undo, func() {
			s.payments = s.payments[:n]
			delete(s.paid, k)
		})
		out = append(out, p)
	}
	return out, nil
}
