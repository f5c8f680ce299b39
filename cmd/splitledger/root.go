package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SscSPs/splitledger/internal/platform/config"
	"github.com/SscSPs/splitledger/internal/platform/logging"
)

// newRootCommand creates the root CLI command with all subcommands registered.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "splitledger",
		Short:   "Shared expense ledger for groups",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newAuditCommand(),
		newTokenCommand(),
	)

	return rootCmd
}

// bootstrap loads configuration and installs the process logger.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger := logging.Setup(cfg.IsProduction, cfg.LogLevel)
	return cfg, logger, nil
}
