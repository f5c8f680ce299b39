package sqlite_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	"github.com/SscSPs/splitledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/splitledger/internal/repositories/storetest"
	"github.com/SscSPs/splitledger/pkg/database"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) portsrepo.RepositoryProvider {
		path := filepath.Join(t.TempDir(), "ledger.db")
		require.NoError(t, database.MigrateSQLite(path, slog.Default()))

		db, err := database.OpenSQLite(context.Background(), path)
		require.NoError(t, err)
		return sqlite.NewRepositoryProvider(db)
	})
}

func TestMigrateSQLite_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	require.NoError(t, database.MigrateSQLite(path, slog.Default()))
	require.NoError(t, database.MigrateSQLite(path, slog.Default()))
}
