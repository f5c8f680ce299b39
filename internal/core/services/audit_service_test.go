package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/services"
	"github.com/SscSPs/splitledger/internal/platform/metrics"
)

func TestAuditGroup_ConsistentAfterActivity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryServices()
	_, err := svc.Group.CreateGroup(ctx, "G1", []string{alice, bob, carol}, alice)
	require.NoError(t, err)
	_, err = svc.Expense.AddExpense(ctx, usd("G1", alice, 3000, 1000))
	require.NoError(t, err)
	_, err = svc.Expense.AddExpense(ctx, usd("G1", bob, 2000, 1000))
	require.NoError(t, err)
	_, err = svc.Settlement.SettleBatch(ctx, "G1", bob, alice, "")
	require.NoError(t, err)

	report, err := svc.Audit.AuditGroup(ctx, "G1")

	require.NoError(t, err)
	assert.True(t, report.Consistent())
	assert.Equal(t, 2, report.ExpenseCount)
	assert.Equal(t, 1, report.PaymentCount)
	assert.NotNil(t, report.Discrepancies)
}

func TestAuditGroup_UnknownGroup(t *testing.T) {
	svc, _ := newMemoryServices()
	_, err := svc.Audit.AuditGroup(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuditGroup_ReportsDriftedEdges(t *testing.T) {
	ctx := context.Background()
	groups := new(MockGroupRepository)
	ledger := &MockLedgerStore{Tx: new(MockLedgerTx)}
	collector := metrics.New()
	svc := services.NewAuditService(groups, ledger, services.WithMetrics(collector))

	groups.On("FindGroupByID", ctx, "G1").Return(&domain.Group{GroupID: "G1", Members: []string{alice, bob}}, nil)
	ledger.On("GroupSnapshot", ctx, "G1").Return(&domain.LedgerSnapshot{
		Expenses: []domain.Expense{
			{ExpenseID: 1, GroupID: "G1", Payer: alice, PerParticipantAmount: 500, Participants: []string{alice, bob}, CreatedAt: time.Now()},
		},
		Edges: []domain.DebtEdge{
			{DebtKey: domain.DebtKey{GroupID: "G1", Debtor: bob, Creditor: alice}, Amount: 300},
			{DebtKey: domain.DebtKey{GroupID: "G1", Debtor: alice, Creditor: bob}, Amount: 40},
		},
	}, nil)

	report, err := svc.AuditGroup(ctx, "G1")

	require.NoError(t, err)
	require.Len(t, report.Discrepancies, 2)
	assert.Equal(t, domain.EdgeDiscrepancy{
		DebtKey: domain.DebtKey{GroupID: "G1", Debtor: alice, Creditor: bob}, Stored: 40, Reconstructed: 0,
	}, report.Discrepancies[0])
	assert.Equal(t, domain.EdgeDiscrepancy{
		DebtKey: domain.DebtKey{GroupID: "G1", Debtor: bob, Creditor: alice}, Stored: 300, Reconstructed: 500,
	}, report.Discrepancies[1])
	assert.False(t, report.Consistent())

	expected := `
# HELP splitledger_audit_discrepancies_total Debt edges found to differ from their reconstruction.
# TYPE splitledger_audit_discrepancies_total counter
splitledger_audit_discrepancies_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected), "splitledger_audit_discrepancies_total"))
}
