package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verdantiq/greenrag/domain/document"
)

func TestNewProcessingRecordStartsProcessing(t *testing.T) {
	record := document.NewProcessingRecord("report.txt")

	assert.Equal(t, "report.txt", record.DocumentName())
	assert.Equal(t, document.StatusProcessing, record.Status())
	assert.Zero(t, record.ChunksCount())
	assert.Empty(t, record.ErrorMessage())
	assert.False(t, record.CreatedAt().IsZero())
}

func TestCompleteSetsStoredCount(t *testing.T) {
	record := document.NewProcessingRecord("report.txt")
	done := record.Complete(12)

	assert.Equal(t, document.StatusCompleted, done.Status())
	assert.Equal(t, 12, done.ChunksCount())
	assert.Empty(t, done.ErrorMessage())
	// The original value is untouched.
	assert.Equal(t, document.StatusProcessing, record.Status())
}

func TestFailCarriesMessageAndZeroChunks(t *testing.T) {
	record := document.NewProcessingRecord("report.txt")
	failed := record.Fail("no readable text")

	assert.Equal(t, document.StatusFailed, failed.Status())
	assert.Equal(t, "no readable text", failed.ErrorMessage())
	assert.Zero(t, failed.ChunksCount())
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, document.StatusPending.CanTransition(document.StatusProcessing))
	assert.True(t, document.StatusProcessing.CanTransition(document.StatusCompleted))
	assert.True(t, document.StatusProcessing.CanTransition(document.StatusFailed))
	// Terminal records may be reset for re-ingestion.
	assert.True(t, document.StatusCompleted.CanTransition(document.StatusProcessing))
	assert.True(t, document.StatusFailed.CanTransition(document.StatusProcessing))

	assert.False(t, document.StatusCompleted.CanTransition(document.StatusFailed))
	assert.False(t, document.StatusPending.CanTransition(document.StatusCompleted))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, document.StatusCompleted.IsTerminal())
	assert.True(t, document.StatusFailed.IsTerminal())
	assert.False(t, document.StatusPending.IsTerminal())
	assert.False(t, document.StatusProcessing.IsTerminal())
}

func TestChunkEmbeddingIsCopied(t *testing.T) {
	embedding := []float32{1, 2, 3}
	chunk := document.NewChunk("report.txt", 0, "text", embedding)

	got := chunk.Embedding()
	got[0] = 99
	assert.EqualValues(t, 1, chunk.Embedding()[0])
}
