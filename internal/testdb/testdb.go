// Package testdb provides a shared in-memory SQLite database helper for
// tests.
package testdb

import (
	"context"
	"testing"

	"github.com/verdantiq/greenrag/infrastructure/persistence"
	"github.com/verdantiq/greenrag/internal/database"
)

// EmbeddingDim is the small embedding dimension used in tests.
const EmbeddingDim = 3

// New creates an in-memory SQLite database with all migrations applied.
// The database is closed automatically when the test finishes.
func New(t *testing.T) database.Database {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, "sqlite:///:memory:")
	if err != nil {
		t.Fatalf("testdb.New: open database: %v", err)
	}
	if err := persistence.Migrate(db, EmbeddingDim); err != nil {
		_ = db.Close()
		t.Fatalf("testdb.New: migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
