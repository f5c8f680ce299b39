package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		GroupRepo: newPgxGroupRepository(dbPool),
		Ledger:    newPgxLedgerRepository(dbPool),
		Close: func() error {
			dbPool.Close()
			return nil
		},
	}
}
