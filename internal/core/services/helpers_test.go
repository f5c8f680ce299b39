package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/core/services"
	"github.com/SscSPs/splitledger/internal/platform/config"
	"github.com/SscSPs/splitledger/internal/repositories/memory"
)

const (
	alice = "0xa11ce00000000000000000000000000000000001"
	bob   = "0xb0b0000000000000000000000000000000000002"
	carol = "0xca20100000000000000000000000000000000003"
	dave  = "0xda7e000000000000000000000000000000000004"
)

// newMemoryServices wires every service over a fresh in-memory store.
func newMemoryServices(options ...services.ServiceOption) (*portssvc.ServiceContainer, *memory.Store) {
	store := memory.NewStore()
	cfg := &config.Config{GroupConfirmAttempts: 2, GroupConfirmInterval: 0}
	repos := portsrepo.RepositoryProvider{GroupRepo: store, Ledger: store}
	return services.NewServiceContainer(cfg, repos, options...), store
}

func usd(groupID, payer string, total, share int64) domain.NewExpense {
	return domain.NewExpense{
		GroupID:              groupID,
		Payer:                payer,
		Merchant:             "Cafe",
		TotalAmount:          total,
		PerParticipantAmount: share,
		CurrencyCode:         "usd",
	}
}

// --- Mock GroupRepository ---
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListGroupsByAccountID(ctx context.Context, accountID string) ([]domain.Group, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockGroupRepository) AddGroupMembers(ctx context.Context, groupID string, accountIDs []string, addedAt time.Time) ([]string, error) {
	args := m.Called(ctx, groupID, accountIDs, addedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock LedgerTx ---
type MockLedgerTx struct {
	mock.Mock
}

func (m *MockLedgerTx) InsertExpense(ctx context.Context, e domain.NewExpense, participants []string, createdAt time.Time) (*domain.Expense, error) {
	args := m.Called(ctx, e, participants, createdAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockLedgerTx) AccrueDebts(ctx context.Context, groupID, creditor string, debtors []string, amount int64) error {
	return m.Called(ctx, groupID, creditor, debtors, amount).Error(0)
}

func (m *MockLedgerTx) LockDebt(ctx context.Context, key domain.DebtKey) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerTx) DecrementDebt(ctx context.Context, key domain.DebtKey, amount int64) error {
	return m.Called(ctx, key, amount).Error(0)
}

func (m *MockLedgerTx) ListCreditorExpenses(ctx context.Context, groupID, creditor string) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID, creditor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockLedgerTx) FindExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockLedgerTx) RetiredExpenseIDs(ctx context.Context, groupID, debtor, creditor string) (map[int64]bool, error) {
	args := m.Called(ctx, groupID, debtor, creditor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockLedgerTx) InsertPayments(ctx context.Context, payments []domain.Payment) ([]domain.Payment, error) {
	args := m.Called(ctx, payments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockLedgerStore runs every unit of work against Tx. Reads go through the embedded mock.
type MockLedgerStore struct {
	mock.Mock
	Tx *MockLedgerTx
}

func (m *MockLedgerStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	return fn(ctx, m.Tx)
}

func (m *MockLedgerStore) FindExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockLedgerStore) ListExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockLedgerStore) ListExpensesPage(ctx context.Context, groupID string, afterID int64, limit int) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockLedgerStore) FindDebt(ctx context.Context, key domain.DebtKey) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerStore) ListDebtsByDebtor(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	args := m.Called(ctx, groupID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

func (m *MockLedgerStore) ListDebtsByCreditor(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	args := m.Called(ctx, groupID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

func (m *MockLedgerStore) ListGroupDebts(ctx context.Context, groupID string) ([]domain.DebtEdge, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebtEdge), args.Error(1)
}

func (m *MockLedgerStore) ListPaymentsByGroupID(ctx context.Context, groupID string) ([]domain.Payment, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockLedgerStore) ListPaymentsByExpenseID(ctx context.Context, expenseID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockLedgerStore) GroupSnapshot(ctx context.Context, groupID string) (*domain.LedgerSnapshot, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSnapshot), args.Error(1)
}

var (
	_ portsrepo.GroupRepositoryFacade = (*MockGroupRepository)(nil)
	_ portsrepo.LedgerStore           = (*MockLedgerStore)(nil)
	_ portsrepo.LedgerTx              = (*MockLedgerTx)(nil)
)
