package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/cleared-dev/ledgerrecon/internal/commands"
	"github.com/cleared-dev/ledgerrecon/internal/logging"
)

func main() {
	// A missing .env is fine; LEDGER_* and LOG_LEVEL may come from the shell.
	_ = godotenv.Load()

	logging.Setup(logging.DefaultConfig())

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
