package services

import (
	"context"
	"strings"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
)

// balanceService composes debt queries into a per-member summary. It holds no state.
type balanceService struct {
	BaseService
	debts    portssvc.DebtSvcFacade
	excluded map[string]bool
}

// NewBalanceService creates a balance service. alwaysExclude lists service accounts
// that are dropped from every response.
func NewBalanceService(debts portssvc.DebtSvcFacade, alwaysExclude []string, options ...ServiceOption) portssvc.BalanceSvcFacade {
	excluded := make(map[string]bool, len(alwaysExclude))
	for _, id := range alwaysExclude {
		excluded[strings.ToLower(id)] = true
	}
	return &balanceService{BaseService: newBaseService(options), debts: debts, excluded: excluded}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) GetUserBalanceInfo(ctx context.Context, groupID, accountID string, exclude []string) (*domain.BalanceInfo, error) {
	skip := make(map[string]bool, len(s.excluded)+len(exclude))
	for id := range s.excluded {
		skip[id] = true
	}
	for _, id := range exclude {
		skip[strings.ToLower(id)] = true
	}

	debts, err := s.debts.GetUserDebts(ctx, groupID, accountID)
	if err != nil {
		return nil, err
	}
	credits, err := s.debts.GetUserCredits(ctx, groupID, accountID)
	if err != nil {
		return nil, err
	}

	info := &domain.BalanceInfo{
		GroupID:   groupID,
		AccountID: accountID,
		Debts:     filterCounterparties(debts, skip),
		Credits:   filterCounterparties(credits, skip),
	}
	for _, d := range info.Debts {
		info.TotalDebts += d.Amount
	}
	for _, c := range info.Credits {
		info.TotalCredits += c.Amount
	}
	info.NetBalance = info.TotalCredits - info.TotalDebts
	return info, nil
}

func filterCounterparties(in []domain.Counterparty, skip map[string]bool) []domain.Counterparty {
	out := make([]domain.Counterparty, 0, len(in))
	for _, c := range in {
		if skip[strings.ToLower(c.AccountID)] {
			continue
		}
		out = append(out, c)
	}
	return out
}
