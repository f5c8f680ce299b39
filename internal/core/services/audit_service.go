package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/matching"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
)

// auditService re-derives debt edges from the expense and payment logs.
type auditService struct {
	BaseService
	groupRepo portsrepo.GroupReader
	ledger    portsrepo.LedgerStore
}

func NewAuditService(groupRepo portsrepo.GroupReader, ledger portsrepo.LedgerStore, options ...ServiceOption) portssvc.AuditSvcFacade {
	return &auditService{BaseService: newBaseService(options), groupRepo: groupRepo, ledger: ledger}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) AuditGroup(ctx context.Context, groupID string) (*domain.AuditReport, error) {
	if _, err := s.groupRepo.FindGroupByID(ctx, groupID); err != nil {
		return nil, err
	}

	snap, err := s.ledger.GroupSnapshot(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read ledger snapshot", slog.String("group_id", groupID))
		return nil, err
	}

	reconstructed := matching.ReconstructEdges(snap.Expenses, snap.Payments)
	report := &domain.AuditReport{
		GroupID:       groupID,
		ExpenseCount:  len(snap.Expenses),
		PaymentCount:  len(snap.Payments),
		EdgeCount:     len(snap.Edges),
		Discrepancies: matching.CompareEdges(snap.Edges, reconstructed),
		CheckedAt:     time.Now().UTC(),
	}
	if report.Discrepancies == nil {
		report.Discrepancies = []domain.EdgeDiscrepancy{}
	}

	s.Metrics.AuditDiscrepancies(len(report.Discrepancies))
	for _, d := range report.Discrepancies {
		s.GetLogger(ctx).Error("Debt edge disagrees with the ledger logs",
			slog.String("group_id", groupID),
			slog.String("debtor", d.Debtor),
			slog.String("creditor", d.Creditor),
			slog.Int64("stored", d.Stored),
			slog.Int64("reconstructed", d.Reconstructed))
	}
	s.LogInfo(ctx, "Group audited",
		slog.String("group_id", groupID),
		slog.Int("expenses", report.ExpenseCount),
		slog.Int("payments", report.PaymentCount),
		slog.Int("discrepancies", len(report.Discrepancies)))
	return report, nil
}
