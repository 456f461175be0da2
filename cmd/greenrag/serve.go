package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/verdantiq/greenrag/infrastructure/api"
	v1 "github.com/verdantiq/greenrag/infrastructure/api/v1"
	"github.com/verdantiq/greenrag/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables (prefix GREENRAG_):
  HOST                       Server host to bind to (default: 0.0.0.0)
  PORT                       Server port to listen on (default: 8080)
  DATA_DIR                   Data directory (default: ~/.greenrag)
  DB_URL                     Database URL (default: sqlite:///{data_dir}/greenrag.db)
  LOG_LEVEL                  Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                 Log format: pretty, json (default: pretty)
  ADMIN_API_KEY              Admin key for mutating routes (empty disables the gate)

  EMBEDDING_ENDPOINT_*       Embedding service configuration
    BASE_URL                 Base URL (e.g., https://api.openai.com/v1)
    MODEL                    Model identifier (e.g., text-embedding-3-small)
    API_KEY                  API key for authentication
    TIMEOUT                  Request timeout in seconds (default: 60)

  GENERATION_ENDPOINT_*      Chat completion service configuration
    (same fields as EMBEDDING_ENDPOINT)

  EMBEDDING_DIM              Embedding vector dimension (default: 1536)
  CHUNK_SIZE                 Segmenter chunk size in characters (default: 600)
  CHUNK_OVERLAP              Segmenter overlap in characters (default: 100)
  SEARCH_THRESHOLD           Similarity threshold (default: 0.75)
  SEARCH_TOP_K               Retrieval result count (default: 5)
  INGEST_RATE                Embedding calls per second during ingestion (default: 5)
  PREGEN_PAUSE_EVERY         Pregeneration items between pauses (default: 10)
  PREGEN_PAUSE               Pregeneration pause in seconds (default: 2)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = cfg.WithOverrides(host, port)

	logger := log.Configure(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	server := api.NewServer(cfg.Addr(), logger)
	router := server.Router()
	router.Mount("/api/v1/documents",
		v1.NewDocumentsRouter(application.ingest, application.progress, logger).Routes(cfg.AdminAPIKey()))
	router.Mount("/api/v1/query",
		v1.NewQueryRouter(application.retrieval, cfg.SearchThreshold(), cfg.SearchTopK(), logger).Routes())
	router.Mount("/api/v1/advisory",
		v1.NewAdvisoryRouter(application.advisory, application.pregen, logger).Routes(cfg.AdminAPIKey()))

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(server.Start)
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
