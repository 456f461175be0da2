package persistence

import (
	"context"
	"fmt"

	"github.com/verdantiq/greenrag/domain/document"
	"github.com/verdantiq/greenrag/infrastructure/tracking"
	"github.com/verdantiq/greenrag/internal/database"
)

// ChunkStore implements document.ChunkStore using GORM and publishes chunk
// mutations to the change feed.
type ChunkStore struct {
	db   database.Database
	feed tracking.Feed
}

// NewChunkStore creates a ChunkStore.
func NewChunkStore(db database.Database, feed tracking.Feed) ChunkStore {
	if feed == nil {
		feed = tracking.NopFeed{}
	}
	return ChunkStore{db: db, feed: feed}
}

// Insert stores a single chunk.
func (s ChunkStore) Insert(ctx context.Context, chunk document.Chunk) error {
	model := chunkToModel(chunk)
	if err := s.db.Session(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("insert chunk %s/%d: %w", chunk.DocumentName(), chunk.ChunkIndex(), err)
	}

	s.feed.Publish(tracking.NewChunkEvent(tracking.EventInsert, chunk.DocumentName(), chunk.ChunkIndex()))
	return nil
}

// DeleteByDocument removes all chunks for a document name.
func (s ChunkStore) DeleteByDocument(ctx context.Context, documentName string) error {
	err := s.db.Session(ctx).Where("document_name = ?", documentName).Delete(&ChunkModel{}).Error
	if err != nil {
		return fmt.Errorf("delete chunks for %s: %w", documentName, err)
	}

	s.feed.Publish(tracking.NewChunkClearEvent(documentName))
	return nil
}

// CountByDocument returns the number of stored chunks for a document.
func (s ChunkStore) CountByDocument(ctx context.Context, documentName string) (int64, error) {
	var count int64
	err := s.db.Session(ctx).Model(&ChunkModel{}).Where("document_name = ?", documentName).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count chunks for %s: %w", documentName, err)
	}
	return count, nil
}

// Recent returns the most recently created chunks, newest first.
func (s ChunkStore) Recent(ctx context.Context, limit int) ([]document.Chunk, error) {
	var models []ChunkModel
	err := s.db.Session(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list recent chunks: %w", err)
	}

	chunks := make([]document.Chunk, len(models))
	for i, m := range models {
		chunks[i] = chunkToDomain(m)
	}
	return chunks, nil
}

// All returns every stored chunk. Used by the SQLite similarity path,
// which computes cosine similarity in Go.
func (s ChunkStore) All(ctx context.Context) ([]document.Chunk, error) {
	var models []ChunkModel
	err := s.db.Session(ctx).Order("document_name, chunk_index").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}

	chunks := make([]document.Chunk, len(models))
	for i, m := range models {
		chunks[i] = chunkToDomain(m)
	}
	return chunks, nil
}

var _ document.ChunkStore = ChunkStore{}
