package main

import (
	"os"

	"contact-dedupe/internal/config"
	"contact-dedupe/internal/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dedupe",
		Short:        "Find likely duplicate contacts",
		SilenceUsage: true,
	}
	root.AddCommand(newScanCmd(), newServeCmd())
	return root
}

// loadConfig loads and validates configuration, then initializes the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.Logger)
	logger.Debug().
		Str("environment", cfg.Logger.Environment).
		Str("log_level", cfg.Logger.Level).
		Msg("configuration loaded successfully")

	return cfg, nil
}
