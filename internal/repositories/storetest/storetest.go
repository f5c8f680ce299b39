// Package storetest holds the behaviour every repository backend must share.
// Backends call Run from their own tests with a factory for a migrated store.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
)

const (
	alice = "0xa11ce00000000000000000000000000000000001"
	bob   = "0xb0b0000000000000000000000000000000000002"
	carol = "0xca20100000000000000000000000000000000003"
	dave  = "0xda7e000000000000000000000000000000000004"
)

// Factory returns a ready store. Stores may be shared between tests, so every
// test works in its own freshly named group.
type Factory func(t *testing.T) portsrepo.RepositoryProvider

// Run executes the contract suite against the backend built by factory.
func Run(t *testing.T, factory Factory) {
	suite.Run(t, &contractSuite{factory: factory})
}

type contractSuite struct {
	suite.Suite
	factory Factory
	repos   portsrepo.RepositoryProvider
	ctx     context.Context
	now     time.Time
}

func (s *contractSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = s.factory(s.T())
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *contractSuite) TearDownTest() {
	if s.repos.Close != nil {
		s.Require().NoError(s.repos.Close())
	}
}

func (s *contractSuite) newGroup(members ...string) string {
	id := "g-" + uuid.NewString()
	err := s.repos.GroupRepo.SaveGroup(s.ctx, domain.Group{
		GroupID:     id,
		Members:     members,
		AuditFields: domain.AuditFields{CreatedAt: s.now, CreatedBy: members[0]},
	})
	s.Require().NoError(err)
	return id
}

// addExpense runs one accrual unit of work the way the expense service does.
func (s *contractSuite) addExpense(groupID, payer string, share int64, participants ...string) *domain.Expense {
	var out *domain.Expense
	err := s.repos.Ledger.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		e, err := tx.InsertExpense(ctx, domain.NewExpense{
			GroupID:              groupID,
			Payer:                payer,
			Merchant:             "Cafe",
			TotalAmount:          share * int64(len(participants)+1),
			PerParticipantAmount: share,
			CurrencyCode:         "USD",
		}, participants, s.now)
		if err != nil {
			return err
		}
		out = e
		return tx.AccrueDebts(ctx, groupID, payer, participants, share)
	})
	s.Require().NoError(err)
	return out
}

func (s *contractSuite) debt(groupID, debtor, creditor string) int64 {
	amount, err := s.repos.Ledger.FindDebt(s.ctx, domain.DebtKey{GroupID: groupID, Debtor: debtor, Creditor: creditor})
	s.Require().NoError(err)
	return amount
}

func (s *contractSuite) TestGroups_SaveFindAndDuplicate() {
	id := s.newGroup(alice, bob)

	g, err := s.repos.GroupRepo.FindGroupByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal([]string{alice, bob}, g.Members)
	s.Equal(alice, g.CreatedBy)
	s.True(g.CreatedAt.Equal(s.now))

	err = s.repos.GroupRepo.SaveGroup(s.ctx, domain.Group{GroupID: id, Members: []string{carol}})
	s.ErrorIs(err, apperrors.ErrAlreadyExists)

	g, err = s.repos.GroupRepo.FindGroupByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal([]string{alice, bob}, g.Members, "a rejected save must not touch membership")

	_, err = s.repos.GroupRepo.FindGroupByID(s.ctx, "g-missing-"+uuid.NewString())
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *contractSuite) TestGroups_AddMembersIsAppendOnly() {
	id := s.newGroup(alice, bob)

	added, err := s.repos.GroupRepo.AddGroupMembers(s.ctx, id, []string{bob, carol, dave}, s.now)
	s.Require().NoError(err)
	s.Equal([]string{carol, dave}, added)

	added, err = s.repos.GroupRepo.AddGroupMembers(s.ctx, id, []string{carol}, s.now)
	s.Require().NoError(err)
	s.Empty(added)

	g, err := s.repos.GroupRepo.FindGroupByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal([]string{alice, bob, carol, dave}, g.Members)

	_, err = s.repos.GroupRepo.AddGroupMembers(s.ctx, "g-missing-"+uuid.NewString(), []string{carol}, s.now)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *contractSuite) TestGroups_ListByAccountInJoinOrder() {
	first := s.newGroup(alice, bob)
	second := s.newGroup(carol)
	_, err := s.repos.GroupRepo.AddGroupMembers(s.ctx, second, []string{alice}, s.now)
	s.Require().NoError(err)

	groups, err := s.repos.GroupRepo.ListGroupsByAccountID(s.ctx, alice)
	s.Require().NoError(err)

	var ids []string
	for _, g := range groups {
		if g.GroupID == first || g.GroupID == second {
			ids = append(ids, g.GroupID)
		}
	}
	s.Equal([]string{first, second}, ids)
}

func (s *contractSuite) TestExpenses_InsertAndRead() {
	id := s.newGroup(alice, bob, carol)
	e1 := s.addExpense(id, alice, 1000, bob, carol)
	e2 := s.addExpense(id, bob, 500, alice, carol)

	s.Greater(e2.ExpenseID, e1.ExpenseID)

	got, err := s.repos.Ledger.FindExpenseByID(s.ctx, e1.ExpenseID)
	s.Require().NoError(err)
	s.Equal([]string{bob, carol}, got.Participants)
	s.Equal(int64(3000), got.TotalAmount)
	s.Equal("USD", got.CurrencyCode)
	s.True(got.CreatedAt.Equal(s.now))

	list, err := s.repos.Ledger.ListExpensesByGroupID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(e1.ExpenseID, list[0].ExpenseID)
	s.Equal(e2.ExpenseID, list[1].ExpenseID)

	_, err = s.repos.Ledger.FindExpenseByID(s.ctx, e2.ExpenseID+1_000_000)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *contractSuite) TestExpenses_Pages() {
	id := s.newGroup(alice, bob, carol)
	other := s.newGroup(alice, bob)
	var ids []int64
	for i := 0; i < 5; i++ {
		ids = append(ids, s.addExpense(id, alice, 100, bob, carol).ExpenseID)
		s.addExpense(other, bob, 100, alice)
	}

	first, err := s.repos.Ledger.ListExpensesPage(s.ctx, id, 0, 2)
	s.Require().NoError(err)
	s.Require().Len(first, 2)
	s.Equal(ids[:2], []int64{first[0].ExpenseID, first[1].ExpenseID})
	s.Equal([]string{bob, carol}, first[1].Participants)

	rest, err := s.repos.Ledger.ListExpensesPage(s.ctx, id, first[1].ExpenseID, 10)
	s.Require().NoError(err)
	s.Require().Len(rest, 3)
	s.Equal(ids[2], rest[0].ExpenseID)
	s.Equal(ids[4], rest[2].ExpenseID)

	empty, err := s.repos.Ledger.ListExpensesPage(s.ctx, id, ids[4], 10)
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *contractSuite) TestDebts_AccrueAndQuery() {
	id := s.newGroup(alice, bob, carol)
	s.addExpense(id, alice, 1000, bob, carol)
	s.addExpense(id, alice, 250, bob)
	s.addExpense(id, bob, 400, alice)

	s.Equal(int64(1250), s.debt(id, bob, alice))
	s.Equal(int64(1000), s.debt(id, carol, alice))
	s.Equal(int64(400), s.debt(id, alice, bob))
	s.Zero(s.debt(id, carol, bob))

	credits, err := s.repos.Ledger.ListDebtsByCreditor(s.ctx, id, alice)
	s.Require().NoError(err)
	s.Equal([]domain.Counterparty{{AccountID: bob, Amount: 1250}, {AccountID: carol, Amount: 1000}}, credits)

	debts, err := s.repos.Ledger.ListDebtsByDebtor(s.ctx, id, alice)
	s.Require().NoError(err)
	s.Equal([]domain.Counterparty{{AccountID: bob, Amount: 400}}, debts)

	edges, err := s.repos.Ledger.ListGroupDebts(s.ctx, id)
	s.Require().NoError(err)
	s.Len(edges, 3)
}

func (s *contractSuite) TestWithinTx_RollsBackEverything() {
	id := s.newGroup(alice, bob)
	s.addExpense(id, alice, 100, bob)
	boom := errors.New("boom")

	err := s.repos.Ledger.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if _, err := tx.InsertExpense(ctx, domain.NewExpense{
			GroupID: id, Payer: alice, TotalAmount: 200, PerParticipantAmount: 100, CurrencyCode: "USD",
		}, []string{bob}, s.now); err != nil {
			return err
		}
		if err := tx.AccrueDebts(ctx, id, alice, []string{bob}, 100); err != nil {
			return err
		}
		return boom
	})

	s.ErrorIs(err, boom)
	s.Equal(int64(100), s.debt(id, bob, alice))
	list, err := s.repos.Ledger.ListExpensesByGroupID(s.ctx, id)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *contractSuite) TestSettlement_DecrementAndPayments() {
	id := s.newGroup(alice, bob)
	e := s.addExpense(id, alice, 700, bob)
	key := domain.DebtKey{GroupID: id, Debtor: bob, Creditor: alice}
	batch := uuid.NewString()

	err := s.repos.Ledger.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		outstanding, err := tx.LockDebt(ctx, key)
		s.Require().NoError(err)
		s.Equal(int64(700), outstanding)

		expenses, err := tx.ListCreditorExpenses(ctx, id, alice)
		s.Require().NoError(err)
		s.Require().Len(expenses, 1)

		if err := tx.DecrementDebt(ctx, key, 700); err != nil {
			return err
		}
		saved, err := tx.InsertPayments(ctx, []domain.Payment{{
			BatchID: batch, ExpenseID: e.ExpenseID, GroupID: id, From: bob, To: alice,
			Amount: 700, Method: domain.SelfPaid, CreatedAt: s.now,
		}})
		if err != nil {
			return err
		}
		s.Require().Len(saved, 1)
		s.NotZero(saved[0].PaymentID)
		return nil
	})
	s.Require().NoError(err)
	s.Zero(s.debt(id, bob, alice))

	edges, err := s.repos.Ledger.ListGroupDebts(s.ctx, id)
	s.Require().NoError(err)
	s.Empty(edges, "settled edges are not listed")

	payments, err := s.repos.Ledger.ListPaymentsByExpenseID(s.ctx, e.ExpenseID)
	s.Require().NoError(err)
	s.Require().Len(payments, 1)
	s.Equal(batch, payments[0].BatchID)
	s.Equal(domain.SelfPaid, payments[0].Method)

	err = s.repos.Ledger.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		retired, err := tx.RetiredExpenseIDs(ctx, id, bob, alice)
		s.Require().NoError(err)
		s.True(retired[e.ExpenseID])

		_, err = tx.InsertPayments(ctx, []domain.Payment{{
			BatchID: uuid.NewString(), ExpenseID: e.ExpenseID, GroupID: id, From: bob, To: alice,
			Amount: 700, Method: domain.Sponsored, CreatedAt: s.now,
		}})
		return err
	})
	s.ErrorIs(err, apperrors.ErrAlreadySettled)
}

func (s *contractSuite) TestSettlement_DecrementNeverGoesNegative() {
	id := s.newGroup(alice, bob)
	s.addExpense(id, alice, 300, bob)
	key := domain.DebtKey{GroupID: id, Debtor: bob, Creditor: alice}

	err := s.repos.Ledger.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return tx.DecrementDebt(ctx, key, 301)
	})

	s.ErrorIs(err, apperrors.ErrDebtMismatch)
	var ledgerErr *apperrors.LedgerError
	s.Require().ErrorAs(err, &ledgerErr)
	s.Equal(int64(300), ledgerErr.Outstanding)
	s.Equal(int64(300), s.debt(id, bob, alice))
}

func (s *contractSuite) TestLockDebt_SerialisesReadModifyWrite() {
	id := s.newGroup(alice, bob)
	const workers = 10
	for i := 0; i < workers; i++ {
		s.addExpense(id, alice, 10, bob)
	}
	key := domain.DebtKey{GroupID: id, Debtor: bob, Creditor: alice}

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.repos.Ledger.WithinTx(s.ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
				outstanding, err := tx.LockDebt(ctx, key)
				if err != nil {
					return err
				}
				if outstanding < 10 {
					return apperrors.ErrNoDebt
				}
				return tx.DecrementDebt(ctx, key, 10)
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}
	s.Zero(s.debt(id, bob, alice))
}

func (s *contractSuite) TestGroupSnapshot() {
	id := s.newGroup(alice, bob, carol)
	s.addExpense(id, alice, 100, bob, carol)
	other := s.newGroup(alice, bob)
	s.addExpense(other, bob, 50, alice)

	snap, err := s.repos.Ledger.GroupSnapshot(s.ctx, id)
	s.Require().NoError(err)
	s.Len(snap.Expenses, 1)
	s.Empty(snap.Payments)
	s.Len(snap.Edges, 2)
}
