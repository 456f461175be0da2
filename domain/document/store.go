package document

import "context"

// ProcessingStore persists processing records, one per document name.
type ProcessingStore interface {
	// Upsert creates the record or overwrites the existing one for the
	// record's document name.
	Upsert(ctx context.Context, record ProcessingRecord) error
	// Get returns the record for a document name.
	Get(ctx context.Context, documentName string) (ProcessingRecord, error)
	// List returns all records ordered by most recently updated first.
	List(ctx context.Context) ([]ProcessingRecord, error)
	// Delete removes the record for a document name.
	Delete(ctx context.Context, documentName string) error
}

// ChunkStore persists document chunks with their embeddings.
type ChunkStore interface {
	// Insert stores a single chunk.
	Insert(ctx context.Context, chunk Chunk) error
	// DeleteByDocument removes all chunks for a document name.
	DeleteByDocument(ctx context.Context, documentName string) error
	// CountByDocument returns the number of stored chunks for a document.
	CountByDocument(ctx context.Context, documentName string) (int64, error)
	// Recent returns the most recently created chunks, newest first.
	Recent(ctx context.Context, limit int) ([]Chunk, error)
}
