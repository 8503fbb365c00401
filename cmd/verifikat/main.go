package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/verifikat-dev/verifikat/internal/commands"
	"github.com/verifikat-dev/verifikat/internal/logger"
)

func main() {
	// VERIFIKAT_* overrides may come from a .env next to the ledger.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log := logger.Get()
		log.Warn().Err(err).Msg("could not load .env")
	}

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
