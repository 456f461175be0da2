package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/verdantiq/greenrag/application/service"
	"github.com/verdantiq/greenrag/domain/search"
	"github.com/verdantiq/greenrag/infrastructure/objectstore"
	"github.com/verdantiq/greenrag/infrastructure/persistence"
	"github.com/verdantiq/greenrag/infrastructure/provider"
	storesearch "github.com/verdantiq/greenrag/infrastructure/search"
	"github.com/verdantiq/greenrag/infrastructure/tracking"
	"github.com/verdantiq/greenrag/internal/config"
	"github.com/verdantiq/greenrag/internal/database"
)

// app bundles the wired services behind the CLI commands.
type app struct {
	cfg       config.AppConfig
	db        database.Database
	progress  *tracking.Progress
	ingest    *service.IngestService
	retrieval *service.RetrievalService
	advisory  *service.AdvisoryService
	pregen    *service.PregenService
	logger    *slog.Logger
}

// buildApp opens the database, runs migrations, and wires every service.
func buildApp(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*app, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := persistence.Migrate(db, cfg.EmbeddingDim()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	blobs, err := objectstore.NewFilesystemStore(cfg.BlobDir())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	feed := tracking.NewMemoryFeed()
	progress := tracking.NewProgress(feed)
	records := persistence.NewProcessingStore(db, feed)
	chunks := persistence.NewChunkStore(db, feed)
	cache := persistence.NewCacheStore(db)

	embedder := provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:         cfg.Embedding().APIKey,
		BaseURL:        cfg.Embedding().BaseURL,
		EmbeddingModel: cfg.Embedding().Model,
		Timeout:        cfg.Embedding().TimeoutDuration(),
	})
	generator := provider.NewOpenAIProvider(provider.OpenAIConfig{
		APIKey:    cfg.Generation().APIKey,
		BaseURL:   cfg.Generation().BaseURL,
		ChatModel: cfg.Generation().Model,
		Timeout:   cfg.Generation().TimeoutDuration(),
	})

	ingest := service.NewIngestService(blobs, records, chunks, embedder, service.IngestConfig{
		ChunkSize:       cfg.ChunkSize(),
		ChunkOverlap:    cfg.ChunkOverlap(),
		EmbedsPerSecond: cfg.IngestRate(),
	}, logger)

	searcher := storesearch.NewStore(db, chunks, logger)
	budget, err := search.NewTokenBudget(search.DefaultContextTokens)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init token budget: %w", err)
	}
	retrieval, err := service.NewRetrievalService(embedder, searcher, generator, budget, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	advisorySvc, err := service.NewAdvisoryService(cache, generator, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	pregen := service.NewPregenService(advisorySvc, service.PregenConfig{
		PauseEvery: cfg.PregenPauseEvery(),
		Pause:      cfg.PregenPauseDuration(),
	}, logger)

	return &app{
		cfg:       cfg,
		db:        db,
		progress:  progress,
		ingest:    ingest,
		retrieval: retrieval,
		advisory:  advisorySvc,
		pregen:    pregen,
		logger:    logger,
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() error {
	return a.db.Close()
}
