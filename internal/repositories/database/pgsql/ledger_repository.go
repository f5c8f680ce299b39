package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
)

// PgxLedgerRepository stores expenses, payments and debt edges. Units of work run
// in a READ COMMITTED transaction; edges are serialised with row locks.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerStore {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerStore = (*PgxLedgerRepository)(nil)

type expenseRow struct {
	ExpenseID            int64     `db:"expense_id"`
	GroupID              string    `db:"group_id"`
	Payer                string    `db:"payer"`
	Merchant             string    `db:"merchant"`
	TotalAmount          int64     `db:"total_amount"`
	PerParticipantAmount int64     `db:"per_participant_amount"`
	CurrencyCode         string    `db:"currency_code"`
	ReceiptRef           string    `db:"receipt_ref"`
	Metadata             string    `db:"metadata"`
	CreatedAt            time.Time `db:"created_at"`
	Participants         []string  `db:"participants"`
}

func (e expenseRow) toDomain() domain.Expense {
	return domain.Expense{
		ExpenseID:            e.ExpenseID,
		GroupID:              e.GroupID,
		Payer:                e.Payer,
		Merchant:             e.Merchant,
		TotalAmount:          e.TotalAmount,
		PerParticipantAmount: e.PerParticipantAmount,
		CurrencyCode:         e.CurrencyCode,
		Participants:         e.Participants,
		ReceiptRef:           e.ReceiptRef,
		Metadata:             e.Metadata,
		CreatedAt:            e.CreatedAt.UTC(),
	}
}

type paymentRow struct {
	PaymentID   int64     `db:"payment_id"`
	BatchID     string    `db:"batch_id"`
	ExpenseID   int64     `db:"expense_id"`
	GroupID     string    `db:"group_id"`
	FromAccount string    `db:"from_account"`
	ToAccount   string    `db:"to_account"`
	Amount      int64     `db:"amount"`
	Method      string    `db:"method"`
	CreatedAt   time.Time `db:"created_at"`
}

func (p paymentRow) toDomain() domain.Payment {
	return domain.Payment{
		PaymentID: p.PaymentID,
		BatchID:   p.BatchID,
		ExpenseID: p.ExpenseID,
		GroupID:   p.GroupID,
		From:      p.FromAccount,
		To:        p.ToAccount,
		Amount:    p.Amount,
		Method:    domain.PaymentMethod(p.Method),
		CreatedAt: p.CreatedAt.UTC(),
	}
}

const expenseSelect = `
SELECT e.expense_id, e.group_id, e.payer, e.merchant, e.total_amount, e.per_participant_amount,
	e.currency_code, e.receipt_ref, e.metadata, e.created_at,
	COALESCE(array_agg(p.account_id ORDER BY p.position) FILTER (WHERE p.account_id IS NOT NULL), '{}') AS participants
FROM expenses e
LEFT JOIN expense_participants p ON p.expense_id = e.expense_id
`

const paymentSelect = `
SELECT payment_id, batch_id::text AS batch_id, expense_id, group_id, from_account, to_account,
	amount, method, created_at
FROM payments
`

func queryExpenses(ctx context.Context, q querier, filter string, args ...any) ([]domain.Expense, error) {
	rows, err := q.Query(ctx, expenseSelect+filter+` GROUP BY e.expense_id ORDER BY e.expense_id;`, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[expenseRow])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect expense rows", err)
	}
	expenses := make([]domain.Expense, 0, len(found))
	for _, e := range found {
		expenses = append(expenses, e.toDomain())
	}
	return expenses, nil
}

func findExpense(ctx context.Context, q querier, expenseID int64) (*domain.Expense, error) {
	expenses, err := queryExpenses(ctx, q, `WHERE e.expense_id = $1`, expenseID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, apperrors.ErrExpenseNotFound
	}
	return &expenses[0], nil
}

func queryPayments(ctx context.Context, q querier, filter string, args ...any) ([]domain.Payment, error) {
	rows, err := q.Query(ctx, paymentSelect+filter+` ORDER BY payment_id;`, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[paymentRow])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect payment rows", err)
	}
	payments := make([]domain.Payment, 0, len(found))
	for _, p := range found {
		payments = append(payments, p.toDomain())
	}
	return payments, nil
}

func queryEdges(ctx context.Context, q querier, groupID string) ([]domain.DebtEdge, error) {
	rows, err := q.Query(ctx, `
		SELECT group_id, debtor, creditor, amount FROM debts
		WHERE group_id = $1 AND amount > 0
		ORDER BY debtor, creditor;`, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debts", err)
	}
	edges, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DebtEdge, error) {
		var e domain.DebtEdge
		err := row.Scan(&e.GroupID, &e.Debtor, &e.Creditor, &e.Amount)
		return e, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect debt rows", err)
	}
	return edges, nil
}

func (r *PgxLedgerRepository) FindExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	return findExpense(ctx, r.Pool, expenseID)
}

func (r *PgxLedgerRepository) ListExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error) {
	return queryExpenses(ctx, r.Pool, `WHERE e.group_id = $1`, groupID)
}

func (r *PgxLedgerRepository) ListExpensesPage(ctx context.Context, groupID string, afterID int64, limit int) ([]domain.Expense, error) {
	return queryExpenses(ctx, r.Pool, `WHERE e.expense_id IN (
		SELECT expense_id FROM expenses
		WHERE group_id = $1 AND expense_id > $2
		ORDER BY expense_id LIMIT $3)`, groupID, afterID, limit)
}

func (r *PgxLedgerRepository) FindDebt(ctx context.Context, key domain.DebtKey) (int64, error) {
	var amount int64
	err := r.Pool.QueryRow(ctx,
		`SELECT amount FROM debts WHERE group_id = $1 AND debtor = $2 AND creditor = $3;`,
		key.GroupID, key.Debtor, key.Creditor).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, apperrors.NewAppError(500, "failed to query debt", err)
	}
	return amount, nil
}

func (r *PgxLedgerRepository) ListDebtsByDebtor(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	return r.counterparties(ctx, `
		SELECT creditor, amount FROM debts
		WHERE group_id = $1 AND debtor = $2 AND amount > 0
		ORDER BY creditor;`, groupID, accountID)
}

func (r *PgxLedgerRepository) ListDebtsByCreditor(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	return r.counterparties(ctx, `
		SELECT debtor, amount FROM debts
		WHERE group_id = $1 AND creditor = $2 AND amount > 0
		ORDER BY debtor;`, groupID, accountID)
}

func (r *PgxLedgerRepository) counterparties(ctx context.Context, query string, args ...any) ([]domain.Counterparty, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debts", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Counterparty, error) {
		var c domain.Counterparty
		err := row.Scan(&c.AccountID, &c.Amount)
		return c, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect debt rows", err)
	}
	return out, nil
}

func (r *PgxLedgerRepository) ListGroupDebts(ctx context.Context, groupID string) ([]domain.DebtEdge, error) {
	return queryEdges(ctx, r.Pool, groupID)
}

func (r *PgxLedgerRepository) ListPaymentsByGroupID(ctx context.Context, groupID string) ([]domain.Payment, error) {
	return queryPayments(ctx, r.Pool, `WHERE group_id = $1`, groupID)
}

func (r *PgxLedgerRepository) ListPaymentsByExpenseID(ctx context.Context, expenseID int64) ([]domain.Payment, error) {
	return queryPayments(ctx, r.Pool, `WHERE expense_id = $1`, expenseID)
}

// GroupSnapshot reads the logs and the edges from one repeatable-read snapshot.
func (r *PgxLedgerRepository) GroupSnapshot(ctx context.Context, groupID string) (*domain.LedgerSnapshot, error) {
	snap := &domain.LedgerSnapshot{}
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	err := r.inTx(ctx, opts, func(tx pgx.Tx) error {
		var err error
		if snap.Expenses, err = queryExpenses(ctx, tx, `WHERE e.group_id = $1`, groupID); err != nil {
			return err
		}
		if snap.Payments, err = queryPayments(ctx, tx, `WHERE group_id = $1`, groupID); err != nil {
			return err
		}
		snap.Edges, err = queryEdges(ctx, tx, groupID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *PgxLedgerRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	return r.inTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(ctx, &pgxLedgerTx{tx: tx})
	})
}
