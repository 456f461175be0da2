package persistence

import (
	"fmt"
	"log/slog"

	"github.com/verdantiq/greenrag/domain/advisory"
	"github.com/verdantiq/greenrag/internal/database"
)

// cacheTables maps advisory content kinds to their cache table names.
var cacheTables = map[advisory.Kind]string{
	advisory.KindScenario:  "scenario_cache",
	advisory.KindStrategy:  "strategy_cache",
	advisory.KindFinancial: "financial_cache",
}

// Migrate creates or updates the schema. On PostgreSQL the chunk table is
// created with raw SQL because its vector column dimension comes from
// configuration; on SQLite AutoMigrate handles it (the vector column is
// plain text there).
func Migrate(db database.Database, embeddingDim int) error {
	gdb := db.GORM()

	if db.IsPostgres() {
		if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS vector`).Error; err != nil {
			return fmt.Errorf("create pgvector extension: %w", err)
		}
	}

	if err := gdb.AutoMigrate(&ProcessingRecordModel{}); err != nil {
		return fmt.Errorf("migrate document_processing: %w", err)
	}

	if db.IsPostgres() {
		if err := migrateChunksPostgres(db, embeddingDim); err != nil {
			return err
		}
	} else {
		if err := gdb.AutoMigrate(&ChunkModel{}); err != nil {
			return fmt.Errorf("migrate document_chunks: %w", err)
		}
	}

	for _, table := range cacheTables {
		if err := gdb.Table(table).AutoMigrate(&CacheEntryModel{}); err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
		// The composite key is the sole addressing mechanism; its uniqueness
		// constraint is what makes the insert race detectable.
		indexSQL := fmt.Sprintf(
			`CREATE UNIQUE INDEX IF NOT EXISTS ux_%s_cache_key ON %s (cache_key)`,
			table, table,
		)
		if err := gdb.Exec(indexSQL).Error; err != nil {
			return fmt.Errorf("create %s cache_key index: %w", table, err)
		}
	}

	return nil
}

// migrateChunksPostgres creates the chunk table and its indexes with the
// configured vector dimension.
func migrateChunksPostgres(db database.Database, embeddingDim int) error {
	gdb := db.GORM()

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS document_chunks (
    id BIGSERIAL PRIMARY KEY,
    document_name VARCHAR(512) NOT NULL,
    chunk_index INTEGER NOT NULL,
    chunk_text TEXT NOT NULL,
    embedding VECTOR(%d) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, embeddingDim)
	if err := gdb.Exec(createSQL).Error; err != nil {
		return fmt.Errorf("create document_chunks: %w", err)
	}

	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_document_chunk ON document_chunks (document_name, chunk_index)`,
		`CREATE INDEX IF NOT EXISTS ix_document_chunks_created_at ON document_chunks (created_at)`,
	}
	for _, stmt := range stmts {
		if err := gdb.Exec(stmt).Error; err != nil {
			return fmt.Errorf("index document_chunks: %w", err)
		}
	}

	// ivfflat needs data to build useful lists; failure here (e.g. older
	// pgvector) degrades to sequential scan, which still answers queries.
	indexSQL := `CREATE INDEX IF NOT EXISTS ix_document_chunks_embedding
ON document_chunks USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)`
	if err := gdb.Exec(indexSQL).Error; err != nil {
		slog.Warn("create embedding index (may already exist)", "error", err)
	}

	return nil
}
