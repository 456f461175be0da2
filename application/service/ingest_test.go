package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantiq/greenrag/application/service"
	"github.com/verdantiq/greenrag/domain/document"
	"github.com/verdantiq/greenrag/infrastructure/objectstore"
	"github.com/verdantiq/greenrag/infrastructure/persistence"
	"github.com/verdantiq/greenrag/infrastructure/tracking"
	"github.com/verdantiq/greenrag/internal/testdb"
)

type ingestFixture struct {
	blobs    *objectstore.FilesystemStore
	records  persistence.ProcessingStore
	chunks   persistence.ChunkStore
	embedder *fakeEmbedder
	svc      *service.IngestService
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()
	db := testdb.New(t)
	blobs, err := objectstore.NewFilesystemStore(t.TempDir())
	require.NoError(t, err)

	records := persistence.NewProcessingStore(db, tracking.NopFeed{})
	chunks := persistence.NewChunkStore(db, tracking.NopFeed{})
	embedder := &fakeEmbedder{}
	svc := service.NewIngestService(blobs, records, chunks, embedder, service.IngestConfig{
		ChunkSize:    200,
		ChunkOverlap: 20,
	}, nil)
	return &ingestFixture{blobs: blobs, records: records, chunks: chunks, embedder: embedder, svc: svc}
}

func longText(sentences int) string {
	var b strings.Builder
	for i := 0; i < sentences; i++ {
		b.WriteString("Scope one emissions from stationary combustion fell by four percent over the reporting year. ")
	}
	return b.String()
}

func TestIngestStoresChunksAndCompletes(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()

	name, err := f.svc.Ingest(ctx, "annual report.txt", []byte(longText(30)))
	require.NoError(t, err)
	assert.Contains(t, name, "annual_report")

	record, err := f.records.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, document.StatusCompleted, record.Status())
	assert.Greater(t, record.ChunksCount(), 0)

	count, err := f.chunks.CountByDocument(ctx, name)
	require.NoError(t, err)
	assert.EqualValues(t, record.ChunksCount(), count)
}

func TestIngestShortDocumentFailsWithZeroChunks(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()

	short := strings.Repeat("a", 99)
	name, err := f.svc.Ingest(ctx, "note.txt", []byte(short))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrNoReadableText)

	record, getErr := f.records.Get(ctx, name)
	require.NoError(t, getErr)
	assert.Equal(t, document.StatusFailed, record.Status())
	assert.Contains(t, record.ErrorMessage(), "no readable text")

	count, countErr := f.chunks.CountByDocument(ctx, name)
	require.NoError(t, countErr)
	assert.Zero(t, count)
}

func TestIngestRecordsStoredCountWhenChunksSkip(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()

	// Second embedding call fails; that chunk is skipped, the rest land.
	f.embedder.failOn = map[int]error{2: errProviderDown}

	name, err := f.svc.Ingest(ctx, "report.txt", []byte(longText(30)))
	require.NoError(t, err)

	record, err := f.records.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, document.StatusCompleted, record.Status())

	count, err := f.chunks.CountByDocument(ctx, name)
	require.NoError(t, err)
	assert.EqualValues(t, record.ChunksCount(), count)
	assert.EqualValues(t, f.embedder.callCount()-1, count)

	// The skip leaves no hole: stored indexes are dense and 0-based.
	chunks, err := f.chunks.All(ctx)
	require.NoError(t, err)
	indexes := make(map[int]bool, len(chunks))
	for _, chunk := range chunks {
		indexes[chunk.ChunkIndex()] = true
	}
	for i := 0; i < int(count); i++ {
		assert.True(t, indexes[i], "missing chunk index %d", i)
	}
}

func TestReprocessingReplacesChunks(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()

	name, err := f.svc.Ingest(ctx, "report.txt", []byte(longText(30)))
	require.NoError(t, err)

	first, err := f.chunks.CountByDocument(ctx, name)
	require.NoError(t, err)

	require.NoError(t, f.svc.ProcessDocument(ctx, name))

	second, err := f.chunks.CountByDocument(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	record, err := f.records.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, document.StatusCompleted, record.Status())
}

func TestProcessMissingBlobFailsRecord(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()

	err := f.svc.ProcessDocument(ctx, "ghost.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, objectstore.ErrObjectNotFound))

	record, getErr := f.records.Get(ctx, "ghost.txt")
	require.NoError(t, getErr)
	assert.Equal(t, document.StatusFailed, record.Status())
}

func TestDeleteRemovesBlobChunksAndRecord(t *testing.T) {
	f := newIngestFixture(t)
	ctx := context.Background()

	name, err := f.svc.Ingest(ctx, "report.txt", []byte(longText(30)))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, name))

	_, err = f.blobs.Download(ctx, name)
	assert.ErrorIs(t, err, objectstore.ErrObjectNotFound)

	count, err := f.chunks.CountByDocument(ctx, name)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = f.records.Get(ctx, name)
	assert.Error(t, err)

	// Deleting again is harmless.
	assert.NoError(t, f.svc.Delete(ctx, name))
}
