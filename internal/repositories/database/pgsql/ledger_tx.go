package pgsql

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
)

// pgxLedgerTx is the LedgerTx of one database transaction.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) InsertExpense(ctx context.Context, e domain.NewExpense, participants []string, createdAt time.Time) (*domain.Expense, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO expenses (
			group_id, payer, merchant, total_amount, per_participant_amount,
			currency_code, receipt_ref, metadata, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING expense_id;`,
		e.GroupID, e.Payer, e.Merchant, e.TotalAmount, e.PerParticipantAmount,
		e.CurrencyCode, e.ReceiptRef, e.Metadata, createdAt,
	).Scan(&id)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert expense", err)
	}

	batch := &pgx.Batch{}
	for i, p := range participants {
		batch.Queue(`INSERT INTO expense_participants (expense_id, account_id, position) VALUES ($1, $2, $3);`, id, p, i)
	}
	br := t.tx.SendBatch(ctx, batch)
	for range participants {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return nil, apperrors.NewAppError(500, "failed to insert expense participant", err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to close participant batch", err)
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

// AccrueDebts upserts every edge in sorted debtor order so concurrent accruals
// acquire row locks in the same sequence.
func (t *pgxLedgerTx) AccrueDebts(ctx context.Context, groupID, creditor string, debtors []string, amount int64) error {
	sorted := slices.Clone(debtors)
	slices.Sort(sorted)

	batch := &pgx.Batch{}
	for _, d := range sorted {
		batch.Queue(`
			INSERT INTO debts (group_id, debtor, creditor, amount)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (group_id, debtor, creditor)
			DO UPDATE SET amount = debts.amount + EXCLUDED.amount;`,
			groupID, d, creditor, amount)
	}
	br := t.tx.SendBatch(ctx, batch)
	defer br.Close()
	for range sorted {
		if _, err := br.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to accrue debt", err)
		}
	}
	return nil
}

// LockDebt makes sure the edge row exists, then holds it FOR UPDATE until the
// transaction ends.
func (t *pgxLedgerTx) LockDebt(ctx context.Context, key domain.DebtKey) (int64, error) {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO debts (group_id, debtor, creditor, amount) VALUES ($1, $2, $3, 0)
		ON CONFLICT (group_id, debtor, creditor) DO NOTHING;`,
		key.GroupID, key.Debtor, key.Creditor)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to prepare debt row", err)
	}

	var amount int64
	err = t.tx.QueryRow(ctx, `
		SELECT amount FROM debts
		WHERE group_id = $1 AND debtor = $2 AND creditor = $3
		FOR UPDATE;`,
		key.GroupID, key.Debtor, key.Creditor).Scan(&amount)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to lock debt", err)
	}
	return amount, nil
}

func (t *pgxLedgerTx) DecrementDebt(ctx context.Context, key domain.DebtKey, amount int64) error {
	var left int64
	err := t.tx.QueryRow(ctx, `
		UPDATE debts SET amount = amount - $4
		WHERE group_id = $1 AND debtor = $2 AND creditor = $3 AND amount >= $4
		RETURNING amount;`,
		key.GroupID, key.Debtor, key.Creditor, amount).Scan(&left)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewAppError(500, "failed to decrement debt", err)
	}

	var current int64
	err = t.tx.QueryRow(ctx,
		`SELECT amount FROM debts WHERE group_id = $1 AND debtor = $2 AND creditor = $3;`,
		key.GroupID, key.Debtor, key.Creditor).Scan(&current)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewAppError(500, "failed to read debt", err)
	}
	return apperrors.NewLedgerError(apperrors.ErrDebtMismatch, key.GroupID, key.Debtor, key.Creditor, current, amount)
}

func (t *pgxLedgerTx) ListCreditorExpenses(ctx context.Context, groupID, creditor string) ([]domain.Expense, error) {
	return queryExpenses(ctx, t.tx, `WHERE e.group_id = $1 AND e.payer = $2`, groupID, creditor)
}

func (t *pgxLedgerTx) FindExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	return findExpense(ctx, t.tx, expenseID)
}

func (t *pgxLedgerTx) RetiredExpenseIDs(ctx context.Context, groupID, debtor, creditor string) (map[int64]bool, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT expense_id FROM payments
		WHERE group_id = $1 AND from_account = $2 AND to_account = $3;`,
		groupID, debtor, creditor)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query retired expenses", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect retired expenses", err)
	}
	retired := make(map[int64]bool, len(ids))
	for _, id := range ids {
		retired[id] = true
	}
	return retired, nil
}

func (t *pgxLedgerTx) InsertPayments(ctx context.Context, payments []domain.Payment) ([]domain.Payment, error) {
	batch := &pgx.Batch{}
	for _, p := range payments {
		batch.Queue(`
			INSERT INTO payments (
				batch_id, expense_id, group_id, from_account, to_account, amount, method, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING payment_id;`,
			p.BatchID, p.ExpenseID, p.GroupID, p.From, p.To, p.Amount, string(p.Method), p.CreatedAt)
	}
	br := t.tx.SendBatch(ctx, batch)
	defer br.Close()

	out := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		if err := br.QueryRow().Scan(&p.PaymentID); err != nil {
			if isUniqueViolation(err) {
				return nil, fmt.Errorf("%w: expense %d", apperrors.ErrAlreadySettled, p.ExpenseID)
			}
			return nil, apperrors.NewAppError(500, "failed to insert payment", err)
		}
		out = append(out, p)
	}
	return out, nil
}
