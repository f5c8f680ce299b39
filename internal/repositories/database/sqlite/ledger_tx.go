package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
)

// sqliteLedgerTx runs inside an immediate transaction, which already holds the
// database write lock, so LockDebt is a plain read.
type sqliteLedgerTx struct {
	tx *sql.Tx
}

var _ portsrepo.LedgerTx = (*sqliteLedgerTx)(nil)

func (t *sqliteLedgerTx) InsertExpense(ctx context.Context, e domain.NewExpense, participants []string, createdAt time.Time) (*domain.Expense, error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO expenses (
			group_id, payer, merchant, total_amount, per_participant_amount,
			currency_code, receipt_ref, metadata, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.GroupID, e.Payer, e.Merchant, e.TotalAmount, e.PerParticipantAmount,
		e.CurrencyCode, e.ReceiptRef, e.Metadata, toUnix(createdAt))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert expense", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read expense id", err)
	}

	for i, p := range participants {
		if _, err := t.tx.ExecContext(ctx,
			`INSERT INTO expense_participants (expense_id, account_id, position) VALUES (?, ?, ?)`,
			id, p, i); err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert expense participant", err)
		}
	}

	return &domain.Expense{
		ExpenseID:            id,
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
	}, nil
}

func (t *sqliteLedgerTx) AccrueDebts(ctx context.Context, groupID, creditor string, debtors []string, amount int64) error {
	sorted := slices.Clone(debtors)
	slices.Sort(sorted)
	for _, d := range sorted {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO debts (group_id, debtor, creditor, amount) VALUES (?, ?, ?, ?)
			ON CONFLICT (group_id, debtor, creditor) DO UPDATE SET amount = amount + excluded.amount`,
			groupID, d, creditor, amount); err != nil {
			return apperrors.NewAppError(500, "failed to accrue debt", err)
		}
	}
	return nil
}

func (t *sqliteLedgerTx) LockDebt(ctx context.Context, key domain.DebtKey) (int64, error) {
	return findDebt(ctx, t.tx, key)
}

func (t *sqliteLedgerTx) DecrementDebt(ctx context.Context, key domain.DebtKey, amount int64) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE debts SET amount = amount - ?
		WHERE group_id = ? AND debtor = ? AND creditor = ? AND amount >= ?`,
		amount, key.GroupID, key.Debtor, key.Creditor, amount)
	if err != nil {
		return apperrors.NewAppError(500, "failed to decrement debt", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}

	current, err := findDebt(ctx, t.tx, key)
	if err != nil {
		return err
	}
	return apperrors.NewLedgerError(apperrors.ErrDebtMismatch, key.GroupID, key.Debtor, key.Creditor, current, amount)
}

func (t *sqliteLedgerTx) ListCreditorExpenses(ctx context.Context, groupID, creditor string) ([]domain.Expense, error) {
	return queryExpenses(ctx, t.tx, `WHERE e.group_id = ? AND e.payer = ?`, groupID, creditor)
}

func (t *sqliteLedgerTx) FindExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	return findExpense(ctx, t.tx, expenseID)
}

func (t *sqliteLedgerTx) RetiredExpenseIDs(ctx context.Context, groupID, debtor, creditor string) (map[int64]bool, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT expense_id FROM payments
		WHERE group_id = ? AND from_account = ? AND to_account = ?`,
		groupID, debtor, creditor)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query retired expenses", err)
	}
	defer rows.Close()

	retired := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan retired expense", err)
		}
		retired[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read retired expenses", err)
	}
	return retired, nil
}

func (t *sqliteLedgerTx) InsertPayments(ctx context.Context, payments []domain.Payment) ([]domain.Payment, error) {
	out := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		res, err := t.tx.ExecContext(ctx, `
			INSERT INTO payments (
				batch_id, expense_id, group_id, from_account, to_account, amount, method, created_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.BatchID, p.ExpenseID, p.GroupID, p.From, p.To, p.Amount, string(p.Method), toUnix(p.CreatedAt))
		if err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("%w: expense %d", apperrors.ErrAlreadySettled, p.ExpenseID)
			}
			return nil, apperrors.NewAppError(500, "failed to insert payment", err)
		}
		if p.PaymentID, err = res.LastInsertId(); err != nil {
			return nil, apperrors.NewAppError(500, "failed to read payment id", err)
		}
		out = append(out, p)
	}
	return out, nil
}
