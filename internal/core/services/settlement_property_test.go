package services_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
)

// ledgerModel tracks what every edge should hold, independently of any store.
type ledgerModel struct {
	edges  map[domain.DebtKey]int64
	shares map[int64]int64
	payer  map[int64]string
	paid   map[[2]any]bool
}

func (m *ledgerModel) key(debtor, creditor string) domain.DebtKey {
	return domain.DebtKey{GroupID: "G1", Debtor: debtor, Creditor: creditor}
}

func TestLedger_RandomOperationsConserveDebt(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryServices()
	members := []string{alice, bob, carol, dave}
	_, err := svc.Group.CreateGroup(ctx, "G1", members, alice)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(20240611))
	model := &ledgerModel{
		edges:  map[domain.DebtKey]int64{},
		shares: map[int64]int64{},
		payer:  map[int64]string{},
		paid:   map[[2]any]bool{},
	}
	var expenseIDs []int64

	pick := func() (string, string) {
		a := members[rng.Intn(len(members))]
		b := members[rng.Intn(len(members))]
		for b == a {
			b = members[rng.Intn(len(members))]
		}
		return a, b
	}

	for step := 0; step < 400; step++ {
		switch op := rng.Intn(3); op {
		case 0:
			payer := members[rng.Intn(len(members))]
			share := int64(rng.Intn(20)+1) * 50
			e, err := svc.Expense.AddExpense(ctx, usd("G1", payer, share*int64(len(members)), share))
			require.NoError(t, err, "step %d", step)
			expenseIDs = append(expenseIDs, e.ExpenseID)
			model.shares[e.ExpenseID] = share
			model.payer[e.ExpenseID] = payer
			for _, p := range members {
				if p != payer {
					model.edges[model.key(p, payer)] += share
				}
			}
		case 1:
			debtor, creditor := pick()
			res, err := svc.Settlement.SettleBatch(ctx, "G1", debtor, creditor, "")
			if model.edges[model.key(debtor, creditor)] == 0 {
				require.ErrorIs(t, err, apperrors.ErrNoDebt, "step %d", step)
				continue
			}
			require.NoError(t, err, "step %d", step)
			var sum int64
			for _, id := range res.RetiredExpenses {
				require.Equal(t, creditor, model.payer[id], "step %d", step)
				require.False(t, model.paid[[2]any{id, debtor}], "step %d: expense %d retired twice", step, id)
				model.paid[[2]any{id, debtor}] = true
				sum += model.shares[id]
			}
			require.Equal(t, sum, res.TotalSettled, "step %d", step)
			model.edges[model.key(debtor, creditor)] -= sum
		case 2:
			if len(expenseIDs) == 0 {
				continue
			}
			id := expenseIDs[rng.Intn(len(expenseIDs))]
			debtor := members[rng.Intn(len(members))]
			creditor := model.payer[id]
			_, err := svc.Settlement.MarkSinglePaid(ctx, id, debtor, creditor, domain.Sponsored)
			switch {
			case debtor == creditor:
				require.ErrorIs(t, err, apperrors.ErrValidation, "step %d", step)
			case model.paid[[2]any{id, debtor}]:
				require.ErrorIs(t, err, apperrors.ErrAlreadySettled, "step %d", step)
			default:
				require.NoError(t, err, "step %d", step)
				model.paid[[2]any{id, debtor}] = true
				model.edges[model.key(debtor, creditor)] -= model.shares[id]
			}
		}

		for _, d := range members {
			for _, c := range members {
				if d == c {
					continue
				}
				got, err := svc.Debt.GetDebt(ctx, "G1", d, c)
				require.NoError(t, err)
				want := model.edges[model.key(d, c)]
				require.GreaterOrEqual(t, got, int64(0), "step %d: negative edge %s->%s", step, d, c)
				require.Equal(t, want, got, "step %d: edge %s->%s", step, d, c)
			}
		}
	}

	report, err := svc.Audit.AuditGroup(ctx, "G1")
	require.NoError(t, err)
	require.True(t, report.Consistent(), "discrepancies: %v", report.Discrepancies)
}
