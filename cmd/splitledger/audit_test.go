package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/splitledger/internal/core/domain"
	"github.com/SscSPs/splitledger/internal/core/services"
	"github.com/SscSPs/splitledger/internal/dto"
	"github.com/SscSPs/splitledger/internal/platform/config"
	"github.com/SscSPs/splitledger/internal/repositories/memory"
)

const (
	alice = "0xa11ce00000000000000000000000000000000001"
	bob   = "0xb0b0000000000000000000000000000000000002"
)

func TestRunAudit(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{GroupConfirmAttempts: 1}
	container := services.NewServiceContainer(cfg, memory.NewRepositoryProvider())

	_, err := container.Group.CreateGroup(ctx, "G1", []string{alice, bob}, alice)
	require.NoError(t, err)
	_, err = container.Expense.AddExpense(ctx, domain.NewExpense{
		GroupID: "G1", Payer: alice, TotalAmount: 1000, PerParticipantAmount: 500, CurrencyCode: "USD",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, runAudit(ctx, container.Audit, []string{"G1"}, &out, logger))

	var report dto.AuditResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.True(t, report.Consistent)
	assert.Equal(t, "G1", report.GroupID)
	assert.Equal(t, 1, report.EdgeCount)

	err = runAudit(ctx, container.Audit, []string{"G1", "MISSING"}, io.Discard, logger)
	assert.ErrorContains(t, err, "MISSING")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"serve", "migrate", "audit", "token"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
