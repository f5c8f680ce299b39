package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/services"
)

type MockDebtService struct {
	mock.Mock
}

func (m *MockDebtService) GetDebt(ctx context.Context, groupID, debtor, creditor string) (int64, error) {
	args := m.Called(ctx, groupID, debtor, creditor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDebtService) GetUserDebts(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	args := m.Called(ctx, groupID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

func (m *MockDebtService) GetUserCredits(ctx context.Context, groupID, accountID string) ([]domain.Counterparty, error) {
	args := m.Called(ctx, groupID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Counterparty), args.Error(1)
}

func TestGetUserBalanceInfo_Exclusions(t *testing.T) {
	ctx := context.Background()
	debts := new(MockDebtService)
	debts.On("GetUserDebts", ctx, "G1", alice).Return([]domain.Counterparty{
		{AccountID: bob, Amount: 300},
		{AccountID: dave, Amount: 50},
	}, nil)
	debts.On("GetUserCredits", ctx, "G1", alice).Return([]domain.Counterparty{
		{AccountID: carol, Amount: 1000},
		{AccountID: dave, Amount: 70},
	}, nil)

	t.Run("no exclusions", func(t *testing.T) {
		svc := services.NewBalanceService(debts, nil)
		info, err := svc.GetUserBalanceInfo(ctx, "G1", alice, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(350), info.TotalDebts)
		assert.Equal(t, int64(1070), info.TotalCredits)
		assert.Equal(t, int64(720), info.NetBalance)
	})

	t.Run("request exclusion is case insensitive", func(t *testing.T) {
		svc := services.NewBalanceService(debts, nil)
		info, err := svc.GetUserBalanceInfo(ctx, "G1", alice, []string{"0xDA7E000000000000000000000000000000000004"})
		require.NoError(t, err)
		assert.Equal(t, []domain.Counterparty{{AccountID: bob, Amount: 300}}, info.Debts)
		assert.Equal(t, []domain.Counterparty{{AccountID: carol, Amount: 1000}}, info.Credits)
		assert.Equal(t, int64(700), info.NetBalance)
	})

	t.Run("configured exclusion applies to every call", func(t *testing.T) {
		svc := services.NewBalanceService(debts, []string{carol})
		info, err := svc.GetUserBalanceInfo(ctx, "G1", alice, []string{bob})
		require.NoError(t, err)
		assert.Equal(t, []domain.Counterparty{{AccountID: dave, Amount: 50}}, info.Debts)
		assert.Equal(t, []domain.Counterparty{{AccountID: dave, Amount: 70}}, info.Credits)
		assert.Equal(t, int64(20), info.NetBalance)
	})
}

func TestGetUserBalanceInfo_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	debts := new(MockDebtService)
	boom := errors.New("db down")
	debts.On("GetUserDebts", ctx, "G1", alice).Return(nil, boom)

	_, err := services.NewBalanceService(debts, nil).GetUserBalanceInfo(ctx, "G1", alice, nil)

	assert.ErrorIs(t, err, boom)
	debts.AssertNotCalled(t, "GetUserCredits", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetUserBalanceInfo_OverMemoryStore(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryServices()
	_, err := svc.Group.CreateGroup(ctx, "G1", []string{alice, bob, carol}, alice)
	require.NoError(t, err)
	_, err = svc.Expense.AddExpense(ctx, usd("G1", alice, 3000, 1000))
	require.NoError(t, err)
	_, err = svc.Expense.AddExpense(ctx, usd("G1", bob, 2000, 1000))
	require.NoError(t, err)

	info, err := svc.Balance.GetUserBalanceInfo(ctx, "G1", alice, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.Counterparty{{AccountID: bob, Amount: 1000}}, info.Debts)
	assert.Equal(t, []domain.Counterparty{{AccountID: bob, Amount: 1000}, {AccountID: carol, Amount: 1000}}, info.Credits)
	assert.Equal(t, int64(1000), info.NetBalance)

	empty, err := svc.Balance.GetUserBalanceInfo(ctx, "G1", dave, nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Debts)
	assert.Empty(t, empty.Credits)
	assert.Zero(t, empty.NetBalance)
}
