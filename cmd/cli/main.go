package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/quotedesk/cmd/cli/internal/command"
	"github.com/MrJamesThe3rd/quotedesk/internal/config"
	"github.com/MrJamesThe3rd/quotedesk/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("failed to load config", "error", err)
	}

	logging.Setup(os.Stderr, cfg.Log.Level, "text")

	if err := command.NewRoot(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
