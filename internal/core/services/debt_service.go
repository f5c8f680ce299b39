package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
)

// debtService answers who-owes-whom queries straight from the derived edges.
type debtService struct {
	BaseService
	debts portsrepo.DebtReader
}

func NewDebtService(debts portsrepo.DebtReader, options ...ServiceOption) portssvc.DebtSvcFacade {
	return &debtService{BaseService: newBaseService(options), debts: debts}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

func (s *debtService) GetDebt(ctx context.Context, groupID, debtor, creditor string) (int64, error) {
	if debtor == creditor {
		return 0, nil
	}
	amount, err := s.debts.FindDebt(ctx, domain.DebtKey{GroupID: groupID, Debtor: debtor, Creditor: creditor})
	if err != nil {
		s.LogError(ctx, err, "Failed to read debt",
			slog.String("group_id", groupID), slog.String("debtor", debtor), slog.String("creditor", creditor))
		return 0, err
	}
	return amount, nil
}

func (s *debtService) GetUserDebts(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	debts, err := s.debts.ListDebtsByDebtor(ctx, groupID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list debts", slog.String("group_id", groupID), slog.String("account_id", accountID))
		return nil, err
	}
	return nonNil(debts), nil
}

func (s *debtService) GetUserCredits(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	credits, err := s.debts.ListDebtsByCreditor(ctx, groupID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list credits", slog.String("group_id", groupID), slog.String("account_id", accountID))
		return nil, err
	}
	return nonNil(credits), nil
}

func nonNil(in []domain.Counterparty) []domain.Counterparty {
	if in == nil {
		return []domain.Counterparty{}
	}
	return in
}
