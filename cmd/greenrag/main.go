// Package main is the entry point for the greenrag CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verdantiq/greenrag/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greenrag",
		Short: "ESG advisory server with document retrieval",
		Long:  `greenrag ingests corporate sustainability documents, answers questions over them with retrieval-augmented generation, and serves cached climate advisory content.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(ingestCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from the .env file and the environment.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
