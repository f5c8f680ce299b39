package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
)

const expenseColumns = `e.expense_id, e.group_id, e.payer, e.merchant, e.total_amount,
	e.per_participant_amount, e.currency_code, e.receipt_ref, e.metadata, e.created_at`

// queryExpenses loads the expenses matching filter, then their participants in a
// second query with the same filter.
func queryExpenses(ctx context.Context, q queryer, filter string, args ...any) ([]domain.Expense, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses e `+filter+` ORDER BY e.expense_id`, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	expenses := []domain.Expense{}
	index := make(map[int64]int)
	for rows.Next() {
		var (
			e         domain.Expense
			createdAt int64
		)
		if err := rows.Scan(&e.ExpenseID, &e.GroupID, &e.Payer, &e.Merchant, &e.TotalAmount,
			&e.PerParticipantAmount, &e.CurrencyCode, &e.ReceiptRef, &e.Metadata, &createdAt); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan expense", err)
		}
		e.CreatedAt = fromUnix(createdAt)
		e.Participants = []string{}
		index[e.ExpenseID] = len(expenses)
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read expenses", err)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	rows, err = q.QueryContext(ctx, `
		SELECT p.expense_id, p.account_id FROM expense_participants p
		JOIN expenses e ON e.expense_id = p.expense_id `+filter+`
		ORDER BY p.expense_id, p.position`, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expense participants", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id      int64
			account string
		)
		if err := rows.Scan(&id, &account); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense participant", err)
		}
		if i, ok := index[id]; ok {
			expenses[i].Participants = append(expenses[i].Participants, account)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read expense participants", err)
	}
	return expenses, nil
}

func findExpense(ctx context.Context, q queryer, expenseID int64) (*domain.Expense, error) {
	expenses, err := queryExpenses(ctx, q, `WHERE e.expense_id = ?`, expenseID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, apperrors.ErrExpenseNotFound
	}
	return &expenses[0], nil
}

func queryPayments(ctx context.Context, q queryer, filter string, args ...any) ([]domain.Payment, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT payment_id, batch_id, expense_id, group_id, from_account, to_account, amount, method, created_at
		FROM payments `+filter+` ORDER BY payment_id`, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var (
			p         domain.Payment
			method    string
			createdAt int64
		)
		if err := rows.Scan(&p.PaymentID, &p.BatchID, &p.ExpenseID, &p.GroupID, &p.From, &p.To,
			&p.Amount, &method, &createdAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment", err)
		}
		p.Method = domain.PaymentMethod(method)
		p.CreatedAt = fromUnix(createdAt)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read payments", err)
	}
	return payments, nil
}

func queryEdges(ctx context.Context, q queryer, groupID string) ([]domain.DebtEdge, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT group_id, debtor, creditor, amount FROM debts
		WHERE group_id = ? AND amount > 0
		ORDER BY debtor, creditor`, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debts", err)
	}
	defer rows.Close()

	edges := []domain.DebtEdge{}
	for rows.Next() {
		var e domain.DebtEdge
		if err := rows.Scan(&e.GroupID, &e.Debtor, &e.Creditor, &e.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan debt", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read debts", err)
	}
	return edges, nil
}

func findDebt(ctx context.Context, q queryer, key domain.DebtKey) (int64, error) {
	var amount int64
	err := q.QueryRowContext(ctx,
		`SELECT amount FROM debts WHERE group_id = ? AND debtor = ? AND creditor = ?`,
		key.GroupID, key.Debtor, key.Creditor).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to query debt", err)
	}
	return amount, nil
}

func (s *Store) FindExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	return findExpense(ctx, s.db, expenseID)
}

func (s *Store) ListExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error) {
	return queryExpenses(ctx, s.db, `WHERE e.group_id = ?`, groupID)
}

func (s *Store) ListExpensesPage(ctx context.Context, groupID string, afterID int64, limit int) ([]domain.Expense, error) {
	// The filter is reused for the participant query, so the page is bounded by a subquery.
	return queryExpenses(ctx, s.db, `WHERE e.expense_id IN (
		SELECT expense_id FROM expenses
		WHERE group_id = ? AND expense_id > ?
		ORDER BY expense_id LIMIT ?)`, groupID, afterID, limit)
}

func (s *Store) FindDebt(ctx context.Context, key domain.DebtKey) (int64, error) {
	return findDebt(ctx, s.db, key)
}

func (s *Store) ListDebtsByDebtor(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	return s.counterparties(ctx, `
		SELECT creditor, amount FROM debts
		WHERE group_id = ? AND debtor = ? AND amount > 0
		ORDER BY creditor`, groupID, accountID)
}

func (s *Store) ListDebtsByCreditor(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	return s.counterparties(ctx, `
		SELECT debtor, amount FROM debts
		WHERE group_id = ? AND creditor = ? AND amount > 0
		ORDER BY debtor`, groupID, accountID)
}

func (s *Store) counterparties(ctx context.Context, query string, args ...any) ([]domain.Counterparty, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debts", err)
	}
	defer rows.Close()

	out := []domain.Counterparty{}
	for rows.Next() {
		var c domain.Counterparty
		if err := rows.Scan(&c.AccountID, &c.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan debt", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read debts", err)
	}
	return out, nil
}

func (s *Store) ListGroupDebts(ctx context.Context, groupID string) ([]domain.DebtEdge, error) {
	return queryEdges(ctx, s.db, groupID)
}

func (s *Store) ListPaymentsByGroupID(ctx context.Context, groupID string) ([]domain.Payment, error) {
	return queryPayments(ctx, s.db, `WHERE group_id = ?`, groupID)
}

func (s *Store) ListPaymentsByExpenseID(ctx context.Context, expenseID int64) ([]domain.Payment, error) {
	return queryPayments(ctx, s.db, `WHERE expense_id = ?`, expenseID)
}

func (s *Store) GroupSnapshot(ctx context.Context, groupID string) (*domain.LedgerSnapshot, error) {
	snap := &domain.LedgerSnapshot{}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		if snap.Expenses, err = queryExpenses(ctx, tx, `WHERE e.group_id = ?`, groupID); err != nil {
			return err
		}
		if snap.Payments, err = queryPayments(ctx, tx, `WHERE group_id = ?`, groupID); err != nil {
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

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return fn(ctx, &sqliteLedgerTx{tx: tx})
	})
}
