package matching

import (
	"cmp"
	"slices"

	"github.com/SscSPs/splitledger/internal/core/domain"
)

// ReconstructEdges derives every debt edge of a group from its logs:
// the sum of participant shares minus the sum of payments, per edge.
// Edges that net to zero are omitted.
func ReconstructEdges(expenses []domain.Expense, payments []domain.Payment) map[domain.DebtKey]int64 {
	edges := make(map[domain.DebtKey]int64)
	for _, e := range expenses {
		for _, p := range e.Participants {
			if p == e.Payer {
				continue
			}
			key := domain.DebtKey{GroupID: e.GroupID, Debtor: p, Creditor: e.Payer}
			edges[key] += e.PerParticipantAmount
		}
	}
	for _, p := range payments {
		key := domain.DebtKey{GroupID: p.GroupID, Debtor: p.From, Creditor: p.To}
		edges[key] -= p.Amount
	}
	for k, v := range edges {
		if v == 0 {
			delete(edges, k)
		}
	}
	return edges
}

// CompareEdges returns the edges whose stored value differs from the reconstruction,
// ordered by debtor then creditor.
func CompareEdges(stored []domain.DebtEdge, reconstructed map[domain.DebtKey]int64) []domain.EdgeDiscrepancy {
	seen := make(map[domain.DebtKey]bool, len(stored))
	var out []domain.EdgeDiscrepancy
	for _, edge := range stored {
		seen[edge.DebtKey] = true
		want := reconstructed[edge.DebtKey]
		if edge.Amount != want {
			out = append(out, domain.EdgeDiscrepancy{DebtKey: edge.DebtKey, Stored: edge.Amount, Reconstructed: want})
		}
	}
	for key, want := range reconstructed {
		if !seen[key] {
			out = append(out, domain.EdgeDiscrepancy{DebtKey: key, Stored: 0, Reconstructed: want})
		}
	}
	slices.SortFunc(out, func(a, b domain.EdgeDiscrepancy) int {
		if c := cmp.Compare(a.Debtor, b.Debtor); c != 0 {
			return c
		}
		return cmp.Compare(a.Creditor, b.Creditor)
	})
	return out
}
