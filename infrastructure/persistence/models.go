// Package persistence provides the GORM-backed stores for processing
// records, chunks, and the advisory content cache.
package persistence

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/verdantiq/greenrag/domain/advisory"
	"github.com/verdantiq/greenrag/domain/document"
)

// ProcessingRecordModel is the GORM model for the document_processing table.
type ProcessingRecordModel struct {
	DocumentName string    `gorm:"column:document_name;primaryKey;size:512"`
	Status       string    `gorm:"column:status;not null;index"`
	ChunksCount  int       `gorm:"column:chunks_count;not null;default:0"`
	ErrorMessage string    `gorm:"column:error_message"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ProcessingRecordModel) TableName() string { return "document_processing" }

// ChunkModel is the GORM model for the document_chunks table. The
// embedding column is a pgvector VECTOR on PostgreSQL; on SQLite the same
// text literal format is stored and cosine similarity is computed in Go.
type ChunkModel struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	DocumentName string          `gorm:"column:document_name;size:512;not null;uniqueIndex:ux_document_chunk,priority:1"`
	ChunkIndex   int             `gorm:"column:chunk_index;not null;uniqueIndex:ux_document_chunk,priority:2"`
	ChunkText    string          `gorm:"column:chunk_text;not null"`
	Embedding    pgvector.Vector `gorm:"column:embedding;type:vector"`
	CreatedAt    time.Time       `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (ChunkModel) TableName() string { return "document_chunks" }

// CacheEntryModel is the GORM model shared by the three advisory cache
// tables (scenario_cache, strategy_cache, financial_cache). Table routing
// happens via .Table(name) at the call site because the same struct maps
// to multiple tables.
type CacheEntryModel struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CacheKey     string    `gorm:"column:cache_key;size:1024;not null"`
	CategoryType string    `gorm:"column:category_type;not null"`
	CategoryName string    `gorm:"column:category_name;not null"`
	Subcategory  string    `gorm:"column:subcategory;not null"`
	Industry     string    `gorm:"column:industry;not null"`
	CompanySize  string    `gorm:"column:company_size;not null"`
	StrategyType string    `gorm:"column:strategy_type"`
	Payload      string    `gorm:"column:payload;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

// recordToModel maps a domain processing record to its GORM model.
func recordToModel(r document.ProcessingRecord) ProcessingRecordModel {
	return ProcessingRecordModel{
		DocumentName: r.DocumentName(),
		Status:       string(r.Status()),
		ChunksCount:  r.ChunksCount(),
		ErrorMessage: r.ErrorMessage(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

// recordToDomain maps a GORM model to the domain processing record.
func recordToDomain(m ProcessingRecordModel) document.ProcessingRecord {
	return document.RestoreProcessingRecord(
		m.DocumentName,
		document.ProcessingStatus(m.Status),
		m.ChunksCount,
		m.ErrorMessage,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// chunkToModel maps a domain chunk to its GORM model.
func chunkToModel(c document.Chunk) ChunkModel {
	return ChunkModel{
		ID:           c.ID(),
		DocumentName: c.DocumentName(),
		ChunkIndex:   c.ChunkIndex(),
		ChunkText:    c.ChunkText(),
		Embedding:    pgvector.NewVector(c.Embedding()),
		CreatedAt:    c.CreatedAt(),
	}
}

// chunkToDomain maps a GORM model to the domain chunk.
func chunkToDomain(m ChunkModel) document.Chunk {
	return document.RestoreChunk(
		m.ID,
		m.DocumentName,
		m.ChunkIndex,
		m.ChunkText,
		m.Embedding.Slice(),
		m.CreatedAt,
	)
}

// entryToModel maps a domain cache entry to its GORM model.
func entryToModel(e advisory.Entry) CacheEntryModel {
	d := e.Dimensions()
	return CacheEntryModel{
		CacheKey:     e.CacheKey(),
		CategoryType: d.CategoryType(),
		CategoryName: d.CategoryName(),
		Subcategory:  d.Subcategory(),
		Industry:     d.Industry(),
		CompanySize:  d.CompanySize(),
		StrategyType: d.StrategyType(),
		Payload:      e.Payload(),
		CreatedAt:    e.CreatedAt(),
	}
}

// entryToDomain maps a GORM model to the domain cache entry.
func entryToDomain(kind advisory.Kind, m CacheEntryModel) advisory.Entry {
	var dims advisory.Dimensions
	if kind == advisory.KindFinancial {
		dims = advisory.NewFinancialDimensions(
			m.CategoryType, m.CategoryName, m.Subcategory, m.Industry, m.CompanySize, m.StrategyType,
		)
	} else {
		dims = advisory.NewDimensions(
			m.CategoryType, m.CategoryName, m.Subcategory, m.Industry, m.CompanySize,
		)
	}
	return advisory.RestoreEntry(kind, dims, m.Payload, m.CreatedAt)
}
