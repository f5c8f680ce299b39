package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
	"github.com/SscSPs/splitledger/internal/core/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/middleware"
)

func newAuditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "audit GROUP_ID...",
		Short: "Recompute debt edges from the expense and payment logs",
		Long: "Recomputes every debt edge of the given groups from their expense and payment logs,\n" +
			"prints one JSON report per group and fails if any stored edge differs.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			ctx := middleware.WithLogger(cmd.Context(), logger)

			repos, err := openRepositories(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeRepositories(repos, logger)

			container := services.NewServiceContainer(cfg, repos)
			return runAudit(ctx, container.Audit, args, cmd.OutOrStdout(), logger)
		},
	}
}

func runAudit(ctx context.Context, auditor portssvc.AuditSvcFacade, groupIDs []string, out io.Writer, logger *slog.Logger) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	inconsistent := 0
	for _, groupID := range groupIDs {
		report, err := auditor.AuditGroup(ctx, groupID)
		if err != nil {
			return fmt.Errorf("auditing group %s: %w", groupID, err)
		}
		if !report.Consistent() {
			inconsistent++
		}
		if err := enc.Encode(dto.ToAuditResponse(report)); err != nil {
			return err
		}
	}

	if inconsistent > 0 {
		logger.Error("Audit found inconsistent groups", slog.Int("groups", inconsistent))
		return fmt.Errorf("%d of %d groups have debt edges that disagree with their logs", inconsistent, len(groupIDs))
	}
	return nil
}
