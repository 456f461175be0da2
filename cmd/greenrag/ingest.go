package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/verdantiq/greenrag/internal/log"
)

func ingestCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Ingest local documents without the HTTP server",
		Long: `Upload one or more local files into the document store and run the
processing pipeline on each: extraction, segmentation, embedding, and
chunk storage. Supported formats: PDF, plain text, Markdown, CSV.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(envFile, args)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}

func runIngest(envFile string, paths []string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	logger := log.Configure(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	failed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		name, err := application.ingest.Ingest(ctx, filepath.Base(path), data)
		if err != nil {
			logger.Error("ingestion failed", "file", path, "error", err)
			failed++
			continue
		}

		record, err := application.ingest.Status(ctx, name)
		if err != nil {
			return fmt.Errorf("read status for %s: %w", name, err)
		}
		fmt.Printf("%s: %s (%d chunks)\n", name, record.Status(), record.ChunksCount())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(paths))
	}
	return nil
}
