package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/verdantiq/greenrag/domain/document"
	"github.com/verdantiq/greenrag/infrastructure/extract"
	"github.com/verdantiq/greenrag/infrastructure/objectstore"
	"github.com/verdantiq/greenrag/infrastructure/provider"
	"github.com/verdantiq/greenrag/infrastructure/segment"
)

// minReadableChars is the floor below which extracted text is treated as
// unusable and the document is failed.
const minReadableChars = 100

// ErrNoReadableText marks a document whose content yields no usable text.
var ErrNoReadableText = errors.New("no readable text")

// IngestService runs the document pipeline: blob download, text
// extraction, segmentation, embedding, chunk storage. Each run replaces
// any chunks from a previous run of the same document, so re-ingestion is
// idempotent.
type IngestService struct {
	blobs     objectstore.Store
	records   document.ProcessingStore
	chunks    document.ChunkStore
	extractor extract.Extractor
	segmenter segment.Segmenter
	embedder  provider.Embedder
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// IngestConfig carries the pipeline tunables.
type IngestConfig struct {
	ChunkSize    int
	ChunkOverlap int
	// EmbedsPerSecond paces the per-chunk embedding calls. Zero or
	// negative disables pacing.
	EmbedsPerSecond float64
}

// NewIngestService creates an IngestService.
func NewIngestService(
	blobs objectstore.Store,
	records document.ProcessingStore,
	chunks document.ChunkStore,
	embedder provider.Embedder,
	cfg IngestConfig,
	logger *slog.Logger,
) *IngestService {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.EmbedsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.EmbedsPerSecond), 1)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestService{
		blobs:     blobs,
		records:   records,
		chunks:    chunks,
		extractor: extract.NewExtractor(),
		segmenter: segment.NewSegmenter(cfg.ChunkSize, cfg.ChunkOverlap),
		embedder:  embedder,
		limiter:   limiter,
		logger:    logger,
	}
}

// Ingest stores an uploaded file under a sanitized, timestamped name and
// runs the processing pipeline on it. It returns the stored name, which is
// the handle for all later operations on the document.
func (s *IngestService) Ingest(ctx context.Context, originalName string, data []byte) (string, error) {
	storedName := objectstore.StampName(objectstore.SanitizeName(originalName), time.Now())
	if err := s.blobs.Upload(ctx, storedName, data); err != nil {
		return "", fmt.Errorf("storing document %q: %w", storedName, err)
	}
	if err := s.ProcessDocument(ctx, storedName); err != nil {
		return storedName, err
	}
	return storedName, nil
}

// ProcessDocument runs the pipeline for an already-stored document. The
// processing record never stays in the processing state after the run:
// every exit path moves it to completed or failed.
func (s *IngestService) ProcessDocument(ctx context.Context, documentName string) error {
	record := document.NewProcessingRecord(documentName)
	if err := s.records.Upsert(ctx, record); err != nil {
		return fmt.Errorf("starting processing record for %q: %w", documentName, err)
	}

	stored, err := s.process(ctx, documentName)
	if err != nil {
		if failErr := s.records.Upsert(ctx, record.Fail(err.Error())); failErr != nil {
			s.logger.Error("recording processing failure",
				"document", documentName, "error", failErr)
		}
		return fmt.Errorf("processing %q: %w", documentName, err)
	}

	if err := s.records.Upsert(ctx, record.Complete(stored)); err != nil {
		return fmt.Errorf("completing processing record for %q: %w", documentName, err)
	}
	s.logger.Info("document processed", "document", documentName, "chunks", stored)
	return nil
}

// process does the pipeline work and returns the number of chunks stored.
func (s *IngestService) process(ctx context.Context, documentName string) (int, error) {
	data, err := s.blobs.Download(ctx, documentName)
	if err != nil {
		return 0, err
	}

	text, err := s.extractor.Extract(documentName, data)
	if err != nil {
		return 0, err
	}
	if len(text) < minReadableChars {
		return 0, ErrNoReadableText
	}

	parts := s.segmenter.Split(text)
	if len(parts) == 0 {
		return 0, ErrNoReadableText
	}

	if err := s.chunks.DeleteByDocument(ctx, documentName); err != nil {
		return 0, fmt.Errorf("clearing previous chunks: %w", err)
	}

	// Chunks are numbered by stored position, not segmentation position,
	// so a skipped chunk leaves no gap in the index sequence.
	stored := 0
	for i, part := range parts {
		if err := s.limiter.Wait(ctx); err != nil {
			return stored, err
		}
		embedding, err := s.embedder.Embed(ctx, part)
		if err != nil {
			s.logger.Warn("embedding chunk failed, skipping",
				"document", documentName, "segment", i, "error", err)
			continue
		}
		chunk := document.NewChunk(documentName, stored, part, embedding)
		if err := s.chunks.Insert(ctx, chunk); err != nil {
			s.logger.Warn("storing chunk failed, skipping",
				"document", documentName, "segment", i, "error", err)
			continue
		}
		stored++
	}
	return stored, nil
}

// Delete removes a document entirely: its blob, its chunks, and its
// processing record. Missing pieces are skipped, so deleting twice is
// harmless.
func (s *IngestService) Delete(ctx context.Context, documentName string) error {
	if err := s.blobs.Remove(ctx, documentName); err != nil {
		return fmt.Errorf("removing blob for %q: %w", documentName, err)
	}
	if err := s.chunks.DeleteByDocument(ctx, documentName); err != nil {
		return fmt.Errorf("removing chunks for %q: %w", documentName, err)
	}
	if err := s.records.Delete(ctx, documentName); err != nil {
		return fmt.Errorf("removing processing record for %q: %w", documentName, err)
	}
	return nil
}

// List returns the processing records, most recently updated first.
func (s *IngestService) List(ctx context.Context) ([]document.ProcessingRecord, error) {
	return s.records.List(ctx)
}

// Status returns the processing record for one document.
func (s *IngestService) Status(ctx context.Context, documentName string) (document.ProcessingRecord, error) {
	return s.records.Get(ctx, documentName)
}
