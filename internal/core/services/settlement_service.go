package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/matching"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
)

const (
	settleKindBatch  = "batch"
	settleKindSingle = "single"
)

// settlementService retires debt. The read of the outstanding amount and the
// decrement always happen inside the same unit of work, under the edge lock.
type settlementService struct {
	BaseService
	ledger portsrepo.LedgerStore
}

func NewSettlementService(ledger portsrepo.LedgerStore, options ...ServiceOption) portssvc.SettlementSvcFacade {
	return &settlementService{BaseService: newBaseService(options), ledger: ledger}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

func (s *settlementService) SettleBatch(ctx context.Context, groupID, debtor, creditor string, method domain.PaymentMethod) (*domain.Settlement, error) {
	method, err := checkSettlementArgs(debtor, creditor, method)
	if err != nil {
		return nil, err
	}
	key := domain.DebtKey{GroupID: groupID, Debtor: debtor, Creditor: creditor}

	var result *domain.Settlement
	err = s.ledger.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		outstanding, err := tx.LockDebt(ctx, key)
		if err != nil {
			return err
		}
		if outstanding == 0 {
			return apperrors.NewLedgerError(apperrors.ErrNoDebt, groupID, debtor, creditor, 0, 0)
		}

		expenses, err := tx.ListCreditorExpenses(ctx, groupID, creditor)
		if err != nil {
			return err
		}
		retired, err := tx.RetiredExpenseIDs(ctx, groupID, debtor, creditor)
		if err != nil {
			return err
		}

		selection := matching.SelectSettlement(expenses, retired, debtor, creditor, outstanding)
		if selection.Empty() {
			return apperrors.NewLedgerError(apperrors.ErrNoMatchingExpenses, groupID, debtor, creditor, outstanding, 0)
		}

		result, err = s.retire(ctx, tx, key, outstanding, selection, method)
		return err
	})
	if err != nil {
		s.settlementFailed(ctx, settleKindBatch, key, err)
		return nil, err
	}

	s.settled(ctx, settleKindBatch, result, method)
	return result, nil
}

func (s *settlementService) MarkSinglePaid(ctx context.Context, expenseID int64, debtor, creditor string, method domain.PaymentMethod) (*domain.Settlement, error) {
	method, err := checkSettlementArgs(debtor, creditor, method)
	if err != nil {
		return nil, err
	}

	var (
		result *domain.Settlement
		key    = domain.DebtKey{Debtor: debtor, Creditor: creditor}
	)
	err = s.ledger.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		expense, err := tx.FindExpenseByID(ctx, expenseID)
		if err != nil {
			return err
		}
		key.GroupID = expense.GroupID
		if !expense.OwedBy(debtor, creditor) {
			return fmt.Errorf("%w: expense %d", apperrors.ErrNotAParticipant, expenseID)
		}

		outstanding, err := tx.LockDebt(ctx, key)
		if err != nil {
			return err
		}
		retired, err := tx.RetiredExpenseIDs(ctx, expense.GroupID, debtor, creditor)
		if err != nil {
			return err
		}
		if retired[expenseID] {
			return fmt.Errorf("%w: expense %d", apperrors.ErrAlreadySettled, expenseID)
		}
		if outstanding < expense.PerParticipantAmount {
			return apperrors.NewLedgerError(apperrors.ErrDebtMismatch, expense.GroupID, debtor, creditor, outstanding, expense.PerParticipantAmount)
		}

		selection := matching.Selection{Expenses: []domain.Expense{*expense}, Total: expense.PerParticipantAmount}
		result, err = s.retire(ctx, tx, key, outstanding, selection, method)
		return err
	})
	if err != nil {
		s.settlementFailed(ctx, settleKindSingle, key, err)
		return nil, err
	}

	s.settled(ctx, settleKindSingle, result, method)
	return result, nil
}

// retire decrements the edge and writes one payment per selected expense.
func (s *settlementService) retire(ctx context.Context, tx portsrepo.LedgerTx, key domain.DebtKey, outstanding int64, selection matching.Selection, method domain.PaymentMethod) (*domain.Settlement, error) {
	if err := tx.DecrementDebt(ctx, key, selection.Total); err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	now := time.Now().UTC()
	payments := make([]domain.Payment, 0, len(selection.Expenses))
	for _, e := range selection.Expenses {
		payments = append(payments, domain.Payment{
			BatchID:   batchID,
			ExpenseID: e.ExpenseID,
			GroupID:   key.GroupID,
			From:      key.Debtor,
			To:        key.Creditor,
			Amount:    e.PerParticipantAmount,
			Method:    method,
			CreatedAt: now,
		})
	}
	saved, err := tx.InsertPayments(ctx, payments)
	if err != nil {
		return nil, err
	}

	return &domain.Settlement{
		BatchID:         batchID,
		GroupID:         key.GroupID,
		Debtor:          key.Debtor,
		Creditor:        key.Creditor,
		RetiredExpenses: selection.ExpenseIDs(),
		TotalSettled:    selection.Total,
		RemainingDebt:   outstanding - selection.Total,
		Payments:        saved,
	}, nil
}

func (s *settlementService) settled(ctx context.Context, kind string, result *domain.Settlement, method domain.PaymentMethod) {
	s.Metrics.Settled(kind, string(method), len(result.RetiredExpenses), result.TotalSettled)
	s.Track(result.Debtor, "debt_settled", map[string]any{
		"group_id": result.GroupID,
		"kind":     kind,
		"method":   string(method),
		"expenses": len(result.RetiredExpenses),
	})
	s.LogInfo(ctx, "Debt settled",
		slog.String("kind", kind),
		slog.String("batch_id", result.BatchID),
		slog.String("group_id", result.GroupID),
		slog.String("debtor", result.Debtor),
		slog.String("creditor", result.Creditor),
		slog.Int64("settled", result.TotalSettled),
		slog.Int64("remaining", result.RemainingDebt),
		slog.Any("expense_ids", result.RetiredExpenses))
}

// settlementFailed logs consistency violations loudly; caller errors are only counted.
func (s *settlementService) settlementFailed(ctx context.Context, kind string, key domain.DebtKey, err error) {
	reason := failureReason(err)
	s.Metrics.SettlementFailed(kind, reason)

	attrs := []any{
		slog.String("kind", kind),
		slog.String("group_id", key.GroupID),
		slog.String("debtor", key.Debtor),
		slog.String("creditor", key.Creditor),
	}
	var ledgerErr *apperrors.LedgerError
	if errors.As(err, &ledgerErr) {
		attrs = append(attrs, slog.Int64("outstanding", ledgerErr.Outstanding), slog.Int64("requested", ledgerErr.Requested))
	}

	switch {
	case apperrors.IsConsistencyViolation(err):
		s.Metrics.ConsistencyViolation(reason)
		s.LogError(ctx, err, "Ledger consistency violation during settlement", attrs...)
	case reason == "error":
		s.LogError(ctx, err, "Settlement failed", attrs...)
	default:
		s.LogDebug(ctx, "Settlement rejected", append(attrs, slog.String("reason", reason))...)
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNoDebt):
		return "no_debt"
	case errors.Is(err, apperrors.ErrNoMatchingExpenses):
		return "no_matching_expenses"
	case errors.Is(err, apperrors.ErrDebtMismatch):
		return "debt_mismatch"
	case errors.Is(err, apperrors.ErrAlreadySettled):
		return "already_settled"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

func checkSettlementArgs(debtor, creditor string, method domain.PaymentMethod) (domain.PaymentMethod, error) {
	if debtor == "" || creditor == "" || debtor == creditor {
		return "", fmt.Errorf("%w: debtor and creditor must be two different accounts", apperrors.ErrValidation)
	}
	if method == "" {
		method = domain.SelfPaid
	}
	if !method.Valid() {
		return "", fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, method)
	}
	return method, nil
}

func (s *settlementService) ListGroupPayments(ctx context.Context, groupID string) ([]domain.Payment, error) {
	payments, err := s.ledger.ListPaymentsByGroupID(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list group payments", slog.String("group_id", groupID))
		return nil, err
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

func (s *settlementService) ListExpensePayments(ctx context.Context, expenseID int64) ([]domain.Payment, error) {
	if _, err := s.ledger.FindExpenseByID(ctx, expenseID); err != nil {
		return nil, err
	}
	payments, err := s.ledger.ListPaymentsByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expense payments", slog.Int64("expense_id", expenseID))
		return nil, err
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}
