package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/matching"
)

func key(debtor, creditor string) domain.DebtKey {
	return domain.DebtKey{GroupID: groupID, Debtor: debtor, Creditor: creditor}
}

func TestReconstructEdges(t *testing.T) {
	expenses := []domain.Expense{
		expense(1, alice, 1000, bob, carol),
		expense(2, bob, 1000, alice, carol),
		expense(3, alice, 500, bob),
	}
	payments := []domain.Payment{
		{ExpenseID: 1, GroupID: groupID, From: bob, To: alice, Amount: 1000},
		{ExpenseID: 2, GroupID: groupID, From: alice, To: bob, Amount: 1000},
	}

	got := matching.ReconstructEdges(expenses, payments)

	assert.Equal(t, map[domain.DebtKey]int64{
		key(bob, alice):   500,
		key(carol, alice): 1000,
		key(carol, bob):   1000,
	}, got)
}

func TestCompareEdges(t *testing.T) {
	reconstructed := map[domain.DebtKey]int64{
		key(bob, alice):   500,
		key(carol, alice): 1000,
	}
	stored := []domain.DebtEdge{
		{DebtKey: key(bob, alice), Amount: 500},
		{DebtKey: key(carol, bob), Amount: 42},
	}

	got := matching.CompareEdges(stored, reconstructed)

	assert.Equal(t, []domain.EdgeDiscrepancy{
		{DebtKey: key(carol, alice), Stored: 0, Reconstructed: 1000},
		{DebtKey: key(carol, bob), Stored: 42, Reconstructed: 0},
	}, got)

	consistent := []domain.DebtEdge{
		{DebtKey: key(bob, alice), Amount: 500},
		{DebtKey: key(carol, alice), Amount: 1000},
	}
	assert.Empty(t, matching.CompareEdges(consistent, reconstructed))
}
