package services

import (
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	confirm := DefaultConfirmPolicy
	var excluded []string
	if cfg != nil {
		confirm = ConfirmPolicy{Attempts: cfg.GroupConfirmAttempts, Interval: cfg.GroupConfirmInterval}
		excluded = cfg.BalanceExcludedAccounts
	}

	container := &portssvc.ServiceContainer{}
	container.Group = NewGroupService(repos.GroupRepo, confirm, options...)
	container.Expense = NewExpenseService(repos.GroupRepo, repos.Ledger, options...)
	container.Debt = NewDebtService(repos.Ledger, options...)
	container.Settlement = NewSettlementService(repos.Ledger, options...)
	container.Balance = NewBalanceService(container.Debt, excluded, options...)
	container.Audit = NewAuditService(repos.GroupRepo, repos.Ledger, options...)
	return container
}
