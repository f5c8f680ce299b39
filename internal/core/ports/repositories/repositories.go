package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	GroupRepo GroupRepositoryFacade
	Ledger    LedgerStore

	// Close releases the backend's connections. It may be nil.
	Close func() error
}
