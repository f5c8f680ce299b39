package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/matching"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/utils/pagination"
)

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	groupRepo portsrepo.GroupReader
	ledger    portsrepo.LedgerStore
}

// NewExpenseService creates a new expense service with the provided dependencies
func NewExpenseService(groupRepo portsrepo.GroupReader, ledger portsrepo.LedgerStore, options ...ServiceOption) portssvc.ExpenseSvcFacade {
	return &expenseService{
		BaseService: newBaseService(options),
		groupRepo:   groupRepo,
		ledger:      ledger,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) AddExpense(ctx context.Context, req domain.NewExpense) (*domain.Expense, error) {
	if req.TotalAmount <= 0 || req.PerParticipantAmount <= 0 {
		return nil, fmt.Errorf("%w: total=%d perParticipant=%d", apperrors.ErrInvalidAmount, req.TotalAmount, req.PerParticipantAmount)
	}
	req.CurrencyCode = strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if req.CurrencyCode == "" {
		return nil, fmt.Errorf("%w: currency code is required", apperrors.ErrValidation)
	}

	group, err := s.groupRepo.FindGroupByID(ctx, req.GroupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load group for expense", slog.String("group_id", req.GroupID))
		}
		return nil, err
	}
	if !group.HasMember(req.Payer) {
		s.LogWarn(ctx, "Non-member tried to add an expense", slog.String("group_id", req.GroupID), slog.String("payer", req.Payer))
		return nil, fmt.Errorf("%w: %s in group %s", apperrors.ErrNotAMember, req.Payer, req.GroupID)
	}

	// Membership snapshot at call time; later joiners are never charged retroactively.
	participants := group.ParticipantsFor(req.Payer)
	if len(participants) == 0 {
		return nil, apperrors.ErrNoParticipants
	}
	if !matching.ShareFits(req.TotalAmount, req.PerParticipantAmount, len(participants)) {
		return nil, fmt.Errorf("%w: %d for each of %d participants exceeds total %d",
			apperrors.ErrInvalidAmount, req.PerParticipantAmount, len(participants), req.TotalAmount)
	}

	var expense *domain.Expense
	err = s.ledger.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		var err error
		expense, err = tx.InsertExpense(ctx, req, participants, time.Now().UTC())
		if err != nil {
			return err
		}
		return tx.AccrueDebts(ctx, req.GroupID, req.Payer, participants, req.PerParticipantAmount)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record expense", slog.String("group_id", req.GroupID), slog.String("payer", req.Payer))
		return nil, err
	}

	s.Metrics.ExpenseAdded(expense.CurrencyCode, len(participants), expense.PerParticipantAmount)
	s.Track(expense.Payer, "expense_added", map[string]any{
		"group_id":     expense.GroupID,
		"expense_id":   expense.ExpenseID,
		"currency":     expense.CurrencyCode,
		"participants": len(participants),
	})
	s.LogInfo(ctx, "Expense recorded",
		slog.String("group_id", expense.GroupID),
		slog.Int64("expense_id", expense.ExpenseID),
		slog.Int64("per_participant", expense.PerParticipantAmount),
		slog.Int("participants", len(participants)))
	return expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	expense, err := s.ledger.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense", slog.Int64("expense_id", expenseID))
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) GetGroupExpenses(ctx context.Context, groupID string) ([]domain.Expense, error) {
	expenses, err := s.ledger.ListExpensesByGroupID(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list group expenses", slog.String("group_id", groupID))
		return nil, err
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// expensesCursor names the expense listing inside pagination tokens.
const expensesCursor = "expenses"

func (s *expenseService) ListGroupExpensesPage(ctx context.Context, groupID string, limit int, nextToken *string) (*domain.ExpensePage, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrValidation)
	}
	var afterID int64
	if nextToken != nil && *nextToken != "" {
		id, err := pagination.DecodeToken(expensesCursor, *nextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		afterID = id
	}

	// One extra row tells whether another page follows.
	expenses, err := s.ledger.ListExpensesPage(ctx, groupID, afterID, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list group expenses page", slog.String("group_id", groupID), slog.Int64("after_id", afterID))
		return nil, err
	}

	page := &domain.ExpensePage{Expenses: expenses}
	if len(expenses) > limit {
		page.Expenses = expenses[:limit]
		token := pagination.EncodeToken(expensesCursor, page.Expenses[limit-1].ExpenseID)
		page.NextToken = &token
	}
	if page.Expenses == nil {
		page.Expenses = []domain.Expense{}
	}
	return page, nil
}
