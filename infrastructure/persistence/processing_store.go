package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/verdantiq/greenrag/domain/document"
	"github.com/verdantiq/greenrag/infrastructure/tracking"
	"github.com/verdantiq/greenrag/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProcessingStore implements document.ProcessingStore using GORM and
// publishes every mutation to the change feed.
type ProcessingStore struct {
	db   database.Database
	feed tracking.Feed
}

// NewProcessingStore creates a ProcessingStore.
func NewProcessingStore(db database.Database, feed tracking.Feed) ProcessingStore {
	if feed == nil {
		feed = tracking.NopFeed{}
	}
	return ProcessingStore{db: db, feed: feed}
}

// Upsert creates or overwrites the record for its document name.
func (s ProcessingStore) Upsert(ctx context.Context, record document.ProcessingRecord) error {
	model := recordToModel(record)
	err := s.db.Session(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "document_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "chunks_count", "error_message", "updated_at",
		}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("upsert processing record: %w", err)
	}

	s.feed.Publish(tracking.NewRecordEvent(tracking.EventUpdate, record))
	return nil
}

// Get returns the record for a document name.
func (s ProcessingStore) Get(ctx context.Context, documentName string) (document.ProcessingRecord, error) {
	var model ProcessingRecordModel
	err := s.db.Session(ctx).Where("document_name = ?", documentName).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return document.ProcessingRecord{}, fmt.Errorf("%w: processing record %s", database.ErrNotFound, documentName)
		}
		return document.ProcessingRecord{}, fmt.Errorf("get processing record: %w", err)
	}
	return recordToDomain(model), nil
}

// List returns all records, most recently updated first.
func (s ProcessingStore) List(ctx context.Context) ([]document.ProcessingRecord, error) {
	var models []ProcessingRecordModel
	err := s.db.Session(ctx).Order("updated_at DESC").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list processing records: %w", err)
	}

	records := make([]document.ProcessingRecord, len(models))
	for i, m := range models {
		records[i] = recordToDomain(m)
	}
	return records, nil
}

// Delete removes the record for a document name.
func (s ProcessingStore) Delete(ctx context.Context, documentName string) error {
	record, err := s.Get(ctx, documentName)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil
		}
		return err
	}

	err = s.db.Session(ctx).Where("document_name = ?", documentName).Delete(&ProcessingRecordModel{}).Error
	if err != nil {
		return fmt.Errorf("delete processing record: %w", err)
	}

	s.feed.Publish(tracking.NewRecordEvent(tracking.EventDelete, record))
	return nil
}

var _ document.ProcessingStore = ProcessingStore{}
