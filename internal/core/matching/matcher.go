// Package matching holds the pure settlement and reconstruction rules of the ledger.
// Nothing here touches storage; services run these functions inside a unit of work.
package matching

import (
	"cmp"
	"slices"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// Selection is the batch of expenses chosen to retire part of a debt edge.
type Selection struct {
	Expenses []domain.Expense
	Total    int64
}

// ExpenseIDs returns the ids of the selected expenses in selection order.
func (s Selection) ExpenseIDs() []int64 {
	ids := make([]int64, len(s.Expenses))
	for i, e := range s.Expenses {
		ids[i] = e.ExpenseID
	}
	return ids
}

// Empty reports whether nothing was selected.
func (s Selection) Empty() bool {
	return len(s.Expenses) == 0
}

// Candidates filters expenses down to those debtor still owes creditor, in creation order.
// retired holds the expense ids already settled by debtor.
func Candidates(expenses []domain.Expense, retired map[int64]bool, debtor, creditor string) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !e.OwedBy(debtor, creditor) || retired[e.ExpenseID] {
			continue
		}
		if e.PerParticipantAmount <= 0 {
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b domain.Expense) int {
		return cmp.Compare(a.ExpenseID, b.ExpenseID)
	})
	return out
}

// SelectSettlement runs the greedy matcher: a single forward pass over the candidates,
// earliest expense first. An expense is taken only if its share still fits under
// outstanding; one that does not fit is skipped and the pass continues. There is no
// backtracking, so some settleable remainder may be left behind.
func SelectSettlement(expenses []domain.Expense, retired map[int64]bool, debtor, creditor string, outstanding int64) Selection {
	var sel Selection
	if outstanding <= 0 {
		return sel
	}
	for _, e := range Candidates(expenses, retired, debtor, creditor) {
		share := e.PerParticipantAmount
		if share > outstanding-sel.Total {
			continue
		}
		sel.Expenses = append(sel.Expenses, e)
		sel.Total += share
	}
	return sel
}

// EqualShare splits total equally between participants, rounding down so that
// share*participants never exceeds total.
func EqualShare(total int64, participants int) int64 {
	if participants <= 0 || total <= 0 {
		return 0
	}
	return total / int64(participants)
}

// ShareFits reports whether share*participants stays within total without overflowing.
func ShareFits(total, share int64, participants int) bool {
	if participants <= 0 {
		return false
	}
	return share <= total/int64(participants)
}
