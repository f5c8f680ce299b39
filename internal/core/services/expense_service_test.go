package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/core/services"
	"github.com/SscSPs/splitledger/internal/repositories/memory"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	svc   *portssvc.ServiceContainer
	store *memory.Store
	ctx   context.Context
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.svc, suite.store = newMemoryServices()
	_, err := suite.svc.Group.CreateGroup(suite.ctx, "G1", []string{alice, bob, carol}, alice)
	suite.Require().NoError(err)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func (suite *ExpenseServiceTestSuite) debt(debtor, creditor string) int64 {
	amount, err := suite.svc.Debt.GetDebt(suite.ctx, "G1", debtor, creditor)
	suite.Require().NoError(err)
	return amount
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_AccruesToEveryOtherMember() {
	expense, err := suite.svc.Expense.AddExpense(suite.ctx, usd("G1", alice, 3000, 1000))

	suite.Require().NoError(err)
	suite.Equal(int64(1), expense.ExpenseID)
	suite.Equal([]string{bob, carol}, expense.Participants)
	suite.Equal("USD", expense.CurrencyCode)
	suite.NotContains(expense.Participants, alice)

	suite.Equal(int64(1000), suite.debt(bob, alice))
	suite.Equal(int64(1000), suite.debt(carol, alice))
	suite.Equal(int64(0), suite.debt(alice, bob))

	expense2, err := suite.svc.Expense.AddExpense(suite.ctx, usd("G1", bob, 2000, 1000))
	suite.Require().NoError(err)
	suite.Equal(int64(2), expense2.ExpenseID)
	suite.Equal([]string{alice, carol}, expense2.Participants)
	suite.Equal(int64(1000), suite.debt(alice, bob))
	suite.Equal(int64(1000), suite.debt(bob, alice))
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_InvalidAmount() {
	for _, tc := range []struct{ total, share int64 }{{0, 10}, {10, 0}, {-5, 1}, {100, 51}} {
		_, err := suite.svc.Expense.AddExpense(suite.ctx, usd("G1", alice, tc.total, tc.share))
		suite.ErrorIs(err, apperrors.ErrInvalidAmount, "total=%d share=%d", tc.total, tc.share)
	}
	expenses, err := suite.svc.Expense.GetGroupExpenses(suite.ctx, "G1")
	suite.Require().NoError(err)
	suite.Empty(expenses)
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_RoundingTolerated() {
	expense, err := suite.svc.Expense.AddExpense(suite.ctx, usd("G1", alice, 1000, 333))

	suite.Require().NoError(err)
	suite.Equal(int64(333), suite.debt(bob, alice))
	suite.Equal(int64(1000), expense.TotalAmount)
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_NotAMember() {
	_, err := suite.svc.Expense.AddExpense(suite.ctx, usd("G1", dave, 3000, 1000))

	suite.ErrorIs(err, apperrors.ErrNotAMember)
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_UnknownGroup() {
	_, err := suite.svc.Expense.AddExpense(suite.ctx, usd("nope", alice, 3000, 1000))

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_SingleMemberGroupFails() {
	_, err := suite.svc.Group.CreateGroup(suite.ctx, "solo", []string{dave}, dave)
	suite.Require().NoError(err)

	_, err = suite.svc.Expense.AddExpense(suite.ctx, usd("solo", dave, 1000, 1000))

	suite.ErrorIs(err, apperrors.ErrNoParticipants)
	expenses, _ := suite.svc.Expense.GetGroupExpenses(suite.ctx, "solo")
	suite.Empty(expenses)
}

func (suite *ExpenseServiceTestSuite) TestAddExpense_LaterMembersNotChargedRetroactively() {
	_, err := suite.svc.Expense.AddExpense(suite.ctx, usd("G1", alice, 3000, 1000))
	suite.Require().NoError(err)

	_, err = suite.svc.Group.AddMembers(suite.ctx, "G1", []string{dave}, alice)
	suite.Require().NoError(err)
	suite.Equal(int64(0), suite.debt(dave, alice))

	expense, err := suite.svc.Expense.AddExpense(suite.ctx, usd("G1", alice, 4000, 1000))
	suite.Require().NoError(err)
	suite.Equal([]string{bob, carol, dave}, expense.Participants)
	suite.Equal(int64(1000), suite.debt(dave, alice))
	suite.Equal(int64(2000), suite.debt(bob, alice))
}

func (suite *ExpenseServiceTestSuite) TestGetExpense() {
	created, err := suite.svc.Expense.AddExpense(suite.ctx, usd("G1", alice, 3000, 1000))
	suite.Require().NoError(err)

	got, err := suite.svc.Expense.GetExpense(suite.ctx, created.ExpenseID)
	suite.Require().NoError(err)
	suite.Equal(created, got)

	_, err = suite.svc.Expense.GetExpense(suite.ctx, 99)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ExpenseServiceTestSuite) TestGetGroupExpenses_CreationOrder() {
	for i := 0; i < 3; i++ {
		_, err := suite.svc.Expense.AddExpense(suite.ctx, usd("G1", bob, 300, 100))
		suite.Require().NoError(err)
	}

	expenses, err := suite.svc.Expense.GetGroupExpenses(suite.ctx, "G1")

	suite.Require().NoError(err)
	suite.Len(expenses, 3)
	for i, e := range expenses {
		suite.Equal(int64(i+1), e.ExpenseID)
	}
}

// An accrual failure must not leave the expense behind.
func TestAddExpense_AccrualFailureReturnsError(t *testing.T) {
	ctx := context.Background()
	groups := new(MockGroupRepository)
	tx := new(MockLedgerTx)
	ledger := &MockLedgerStore{Tx: tx}
	svc := services.NewExpenseService(groups, ledger)

	groups.On("FindGroupByID", ctx, "G1").Return(&domain.Group{GroupID: "G1", Members: []string{alice, bob}}, nil)
	tx.On("InsertExpense", ctx, mock.Anything, []string{bob}, mock.Anything).Return(&domain.Expense{ExpenseID: 1}, nil)
	tx.On("AccrueDebts", ctx, "G1", alice, []string{bob}, int64(500)).Return(assert.AnError)

	expense, err := svc.AddExpense(ctx, usd("G1", alice, 1000, 500))

	assert.Nil(t, expense)
	assert.ErrorIs(t, err, assert.AnError)
	tx.AssertExpectations(t)
}

func (suite *ExpenseServiceTestSuite) TestListGroupExpensesPage_WalksTheLog() {
	for i := 0; i < 5; i++ {
		_, err := suite.svc.Expense.AddExpense(suite.ctx, usd("G1", alice, 300, 100))
		suite.Require().NoError(err)
	}

	var (
		seen  []int64
		token *string
		pages int
	)
	for {
		page, err := suite.svc.Expense.ListGroupExpensesPage(suite.ctx, "G1", 2, token)
		suite.Require().NoError(err)
		pages++
		for _, e := range page.Expenses {
			seen = append(seen, e.ExpenseID)
		}
		if page.NextToken == nil {
			break
		}
		token = page.NextToken
	}

	suite.Equal(3, pages)
	suite.Equal([]int64{1, 2, 3, 4, 5}, seen)
}

func (suite *ExpenseServiceTestSuite) TestListGroupExpensesPage_ExactFitHasNoNextToken() {
	for i := 0; i < 2; i++ {
		_, err := suite.svc.Expense.AddExpense(suite.ctx, usd("G1", alice, 300, 100))
		suite.Require().NoError(err)
	}

	page, err := suite.svc.Expense.ListGroupExpensesPage(suite.ctx, "G1", 2, nil)
	suite.Require().NoError(err)
	suite.Len(page.Expenses, 2)
	suite.Nil(page.NextToken)
}

func (suite *ExpenseServiceTestSuite) TestListGroupExpensesPage_RejectsBadInput() {
	_, err := suite.svc.Expense.ListGroupExpensesPage(suite.ctx, "G1", 0, nil)
	suite.ErrorIs(err, apperrors.ErrValidation)

	bogus := "not-a-token!"
	_, err = suite.svc.Expense.ListGroupExpensesPage(suite.ctx, "G1", 10, &bogus)
	suite.ErrorIs(err, apperrors.ErrValidation)
}
