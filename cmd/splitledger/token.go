package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/splitledger/internal/core/identity"
	"github.com/SscSPs/splitledger/internal/middleware"
)

func newTokenCommand() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token ACCOUNT",
		Short: "Issue a bearer token for an account, for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap()
			if err != nil {
				return err
			}
			accountID, err := identity.Canonical(args[0])
			if err != nil {
				return err
			}
			tok, err := middleware.SignAccountToken(cfg.JWTSecret, cfg.JWTIssuer, accountID, ttl)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
