package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/verdantiq/greenrag/domain/advisory"
	"github.com/verdantiq/greenrag/internal/database"
	"gorm.io/gorm"
)

// CacheStore implements advisory.CacheStore over the per-kind cache
// tables. One GORM model serves all three tables; routing uses .Table().
type CacheStore struct {
	db database.Database
}

// NewCacheStore creates a CacheStore.
func NewCacheStore(db database.Database) CacheStore {
	return CacheStore{db: db}
}

// Get returns the entry for a kind and composite key.
func (s CacheStore) Get(ctx context.Context, kind advisory.Kind, cacheKey string) (advisory.Entry, error) {
	table, err := cacheTable(kind)
	if err != nil {
		return advisory.Entry{}, err
	}

	var model CacheEntryModel
	err = s.db.Session(ctx).Table(table).Where("cache_key = ?", cacheKey).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return advisory.Entry{}, fmt.Errorf("%w: %s entry %q", database.ErrNotFound, kind, cacheKey)
		}
		return advisory.Entry{}, fmt.Errorf("get %s cache entry: %w", kind, err)
	}
	return entryToDomain(kind, model), nil
}

// Insert stores a new entry. A unique-constraint violation on the
// composite key means another writer won the race and is reported as
// advisory.ErrDuplicateEntry; the caller re-reads the winner's row.
func (s CacheStore) Insert(ctx context.Context, entry advisory.Entry) error {
	table, err := cacheTable(entry.Kind())
	if err != nil {
		return err
	}

	model := entryToModel(entry)
	err = s.db.Session(ctx).Table(table).Create(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s %q", advisory.ErrDuplicateEntry, entry.Kind(), entry.CacheKey())
		}
		return fmt.Errorf("insert %s cache entry: %w", entry.Kind(), err)
	}
	return nil
}

// cacheTable resolves the table for a content kind.
func cacheTable(kind advisory.Kind) (string, error) {
	table, ok := cacheTables[kind]
	if !ok {
		return "", fmt.Errorf("no cache table for kind %q", kind)
	}
	return table, nil
}

var _ advisory.CacheStore = CacheStore{}
