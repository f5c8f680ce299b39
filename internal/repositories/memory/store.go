// Package memory provides an in-process implementation of the repository ports.
// A single lock serialises every unit of work, and an undo log rolls back a
// unit of work that fails part way through.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
)

type paidKey struct {
	expenseID int64
	from      string
}

// Store keeps groups, expenses, payments and debt edges in memory.
type Store struct {
	mu sync.RWMutex

	groups      map[string]*domain.Group
	memberships map[string][]string // account id -> group ids in join order
	expenses    []domain.Expense    // expense id n lives at index n-1
	payments    []domain.Payment    // payment id n lives at index n-1
	paid        map[paidKey]bool
	debts       map[domain.DebtKey]int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		groups:      make(map[string]*domain.Group),
		memberships: make(map[string][]string),
		paid:        make(map[paidKey]bool),
		debts:       make(map[domain.DebtKey]int64),
	}
}

// NewRepositoryProvider wires a fresh Store into every repository port.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	s := NewStore()
	return portsrepo.RepositoryProvider{GroupRepo: s, Ledger: s}
}

var (
	_ portsrepo.GroupRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerStore           = (*Store)(nil)
)

// --- groups ---

func (s *Store) SaveGroup(ctx context.Context, group domain.Group) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[group.GroupID]; ok {
		return apperrors.ErrAlreadyExists
	}
	g := cloneGroup(group)
	s.groups[g.GroupID] = &g
	for _, m := range g.Members {
		s.memberships[m] = append(s.memberships[m], g.GroupID)
	}
	return nil
}

func (s *Store) AddGroupMembers(ctx context.Context, groupID string, accountIDs []string, _ time.Time) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	var added []string
	for _, id := range accountIDs {
		if g.HasMember(id) {
			continue
		}
		g.Members = append(g.Members, id)
		s.memberships[id] = append(s.memberships[id], groupID)
		added = append(added, id)
	}
	return added, nil
}

func (s *Store) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	out := cloneGroup(*g)
	return &out, nil
}

func (s *Store) ListGroupsByAccountID(ctx context.Context, accountID string) ([]domain.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.memberships[accountID]
	out := make([]domain.Group, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneGroup(*s.groups[id]))
	}
	return out, nil
}

// --- expenses ---

func (s *Store) FindExpenseByID(ctx context.Context, expenseID int64) (*domain.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findExpense(expenseID)
}

func (s *Store) ListExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterExpenses(func(e *domain.Expense) bool { return e.GroupID == groupID }), nil
}

func (s *Store) ListExpensesPage(ctx context.Context, groupID string, afterID int64, limit int) ([]domain.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	page := s.filterExpenses(func(e *domain.Expense) bool { return e.GroupID == groupID && e.ExpenseID > afterID })
	if limit >= 0 && len(page) > limit {
		page = page[:limit]
	}
	return page, nil
}

func (s *Store) findExpense(expenseID int64) (*domain.Expense, error) {
	if expenseID < 1 || expenseID > int64(len(s.expenses)) {
		return nil, apperrors.ErrExpenseNotFound
	}
	e := cloneExpense(s.expenses[expenseID-1])
	return &e, nil
}

func (s *Store) filterExpenses(keep func(*domain.Expense) bool) []domain.Expense {
	out := []domain.Expense{}
	for i := range s.expenses {
		if keep(&s.expenses[i]) {
			out = append(out, cloneExpense(s.expenses[i]))
		}
	}
	return out
}

// --- debts ---

func (s *Store) FindDebt(ctx context.Context, key domain.DebtKey) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debts[key], nil
}

func (s *Store) ListDebtsByDebtor(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	return s.counterparties(ctx, func(k domain.DebtKey) (string, bool) {
		return k.Creditor, k.GroupID == groupID && k.Debtor == accountID
	})
}

func (s *Store) ListDebtsByCreditor(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	return s.counterparties(ctx, func(k domain.DebtKey) (string, bool) {
		return k.Debtor, k.GroupID == groupID && k.Creditor == accountID
	})
}

func (s *Store) counterparties(ctx context.Context, match func(domain.DebtKey) (string, bool)) ([]domain.Counterparty, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Counterparty{}
	for k, amount := range s.debts {
		other, ok := match(k)
		if !ok || amount == 0 {
			continue
		}
		out = append(out, domain.Counterparty{AccountID: other, Amount: amount})
	}
	slices.SortFunc(out, func(a, b domain.Counterparty) int { return cmp.Compare(a.AccountID, b.AccountID) })
	return out, nil
}

func (s *Store) ListGroupDebts(ctx context.Context, groupID string) ([]domain.DebtEdge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.DebtEdge{}
	for k, amount := range s.debts {
		if k.GroupID == groupID && amount != 0 {
			out = append(out, domain.DebtEdge{DebtKey: k, Amount: amount})
		}
	}
	slices.SortFunc(out, func(a, b domain.DebtEdge) int {
		if c := cmp.Compare(a.Debtor, b.Debtor); c != 0 {
			return c
		}
		return cmp.Compare(a.Creditor, b.Creditor)
	})
	return out, nil
}

// --- payments ---

func (s *Store) ListPaymentsByGroupID(ctx context.Context, groupID string) ([]domain.Payment, error) {
	return s.filterPayments(ctx, func(p *domain.Payment) bool { return p.GroupID == groupID })
}

func (s *Store) ListPaymentsByExpenseID(ctx context.Context, expenseID int64) ([]domain.Payment, error) {
	return s.filterPayments(ctx, func(p *domain.Payment) bool { return p.ExpenseID == expenseID })
}

func (s *Store) filterPayments(ctx context.Context, keep func(*domain.Payment) bool) ([]domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Payment{}
	for i := range s.payments {
		if keep(&s.payments[i]) {
			out = append(out, s.payments[i])
		}
	}
	return out, nil
}

func cloneGroup(g domain.Group) domain.Group {
	g.Members = slices.Clone(g.Members)
	return g
}

func cloneExpense(e domain.Expense) domain.Expense {
	e.Participants = slices.Clone(e.Participants)
	return e
}

func (s *Store) GroupSnapshot(ctx context.Context, groupID string) (*domain.LedgerSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &domain.LedgerSnapshot{
		Expenses: s.filterExpenses(func(e *domain.Expense) bool { return e.GroupID == groupID }),
		Payments: []domain.Payment{},
		Edges:    []domain.DebtEdge{},
	}
	for _, p := range s.payments {
		if p.GroupID == groupID {
			snap.Payments = append(snap.Payments, p)
		}
	}
	for k, amount := range s.debts {
		if k.GroupID == groupID && amount != 0 {
			snap.Edges = append(snap.Edges, domain.DebtEdge{DebtKey: k, Amount: amount})
		}
	}
	return snap, nil
}
