package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/matching"
)

const (
	groupID = "g1"
	alice   = "0xaaaa000000000000000000000000000000000001"
	bob     = "0xbbbb000000000000000000000000000000000002"
	carol   = "0xcccc000000000000000000000000000000000003"
)

func expense(id int64, payer string, share int64, participants ...string) domain.Expense {
	return domain.Expense{
		ExpenseID:            id,
		GroupID:              groupID,
		Payer:                payer,
		TotalAmount:          share * int64(len(participants)+1),
		PerParticipantAmount: share,
		CurrencyCode:         "USD",
		Participants:         participants,
	}
}

func TestSelectSettlement(t *testing.T) {
	tests := []struct {
		name        string
		expenses    []domain.Expense
		retired     map[int64]bool
		outstanding int64
		wantIDs     []int64
		wantTotal   int64
	}{
		{
			name:        "exact single match",
			expenses:    []domain.Expense{expense(1, alice, 1000, bob, carol)},
			outstanding: 1000,
			wantIDs:     []int64{1},
			wantTotal:   1000,
		},
		{
			name:        "second expense does not fit",
			expenses:    []domain.Expense{expense(1, alice, 1000, bob), expense(2, alice, 1000, bob)},
			outstanding: 1500,
			wantIDs:     []int64{1},
			wantTotal:   1000,
		},
		{
			name: "skips a large expense and keeps scanning",
			expenses: []domain.Expense{
				expense(1, alice, 300, bob),
				expense(2, alice, 900, bob),
				expense(3, alice, 200, bob),
			},
			outstanding: 600,
			wantIDs:     []int64{1, 3},
			wantTotal:   500,
		},
		{
			name: "earliest first even when a later pair packs better",
			expenses: []domain.Expense{
				expense(1, alice, 600, bob),
				expense(2, alice, 500, bob),
				expense(3, alice, 500, bob),
			},
			outstanding: 1000,
			wantIDs:     []int64{1},
			wantTotal:   600,
		},
		{
			name: "ignores other creditors and non-participants",
			expenses: []domain.Expense{
				expense(1, carol, 100, bob),
				expense(2, alice, 100, carol),
				expense(3, alice, 100, bob),
			},
			outstanding: 300,
			wantIDs:     []int64{3},
			wantTotal:   100,
		},
		{
			name:        "skips retired expenses",
			expenses:    []domain.Expense{expense(1, alice, 100, bob), expense(2, alice, 100, bob)},
			retired:     map[int64]bool{1: true},
			outstanding: 100,
			wantIDs:     []int64{2},
			wantTotal:   100,
		},
		{
			name:        "input order does not matter",
			expenses:    []domain.Expense{expense(3, alice, 100, bob), expense(1, alice, 100, bob), expense(2, alice, 100, bob)},
			outstanding: 200,
			wantIDs:     []int64{1, 2},
			wantTotal:   200,
		},
		{
			name:        "nothing fits",
			expenses:    []domain.Expense{expense(1, alice, 1000, bob)},
			outstanding: 999,
			wantIDs:     []int64{},
			wantTotal:   0,
		},
		{
			name:        "no outstanding debt",
			expenses:    []domain.Expense{expense(1, alice, 1000, bob)},
			outstanding: 0,
			wantIDs:     []int64{},
			wantTotal:   0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel := matching.SelectSettlement(tc.expenses, tc.retired, bob, alice, tc.outstanding)
			assert.Equal(t, tc.wantIDs, sel.ExpenseIDs())
			assert.Equal(t, tc.wantTotal, sel.Total)
			assert.LessOrEqual(t, sel.Total, max(tc.outstanding, 0))
			assert.Equal(t, len(tc.wantIDs) == 0, sel.Empty())
		})
	}
}

func TestSelectSettlement_Deterministic(t *testing.T) {
	expenses := []domain.Expense{
		expense(4, alice, 250, bob),
		expense(2, alice, 700, bob),
		expense(1, alice, 300, bob),
		expense(3, alice, 100, bob),
	}
	first := matching.SelectSettlement(expenses, nil, bob, alice, 800)
	for i := 0; i < 5; i++ {
		again := matching.SelectSettlement(expenses, nil, bob, alice, 800)
		require.Equal(t, first, again)
	}
	assert.Equal(t, []int64{1, 3, 4}, first.ExpenseIDs())
}

func TestSelectSettlement_LargeAmountsDoNotOverflow(t *testing.T) {
	const huge = int64(1) << 62
	expenses := []domain.Expense{expense(1, alice, huge, bob), expense(2, alice, huge, bob)}
	sel := matching.SelectSettlement(expenses, nil, bob, alice, huge+1)
	assert.Equal(t, []int64{1}, sel.ExpenseIDs())
	assert.Equal(t, huge, sel.Total)
}

func TestEqualShare(t *testing.T) {
	assert.Equal(t, int64(1000), matching.EqualShare(3000, 3))
	assert.Equal(t, int64(333), matching.EqualShare(1000, 3))
	assert.Equal(t, int64(0), matching.EqualShare(1000, 0))
	assert.Equal(t, int64(0), matching.EqualShare(-5, 2))
}

func TestShareFits(t *testing.T) {
	assert.True(t, matching.ShareFits(3000, 1000, 2))
	assert.True(t, matching.ShareFits(3000, 1500, 2))
	assert.False(t, matching.ShareFits(3000, 1501, 2))
	assert.False(t, matching.ShareFits(3000, 100, 0))
	assert.False(t, matching.ShareFits(10, 1<<62, 4))
}
