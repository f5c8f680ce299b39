package main

import (
	"os"
)

// Set at build time with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

// @title Splitledger API
// @version 1.0
// @description Group expense ledger: shared expenses, pairwise debts and their settlement.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
