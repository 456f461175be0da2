package search

import (
	"context"
	"log/slog"
	"sort"

	"github.com/pgvector/pgvector-go"
	"github.com/verdantiq/greenrag/domain/document"
	domainsearch "github.com/verdantiq/greenrag/domain/search"
	"github.com/verdantiq/greenrag/infrastructure/persistence"
	"github.com/verdantiq/greenrag/internal/database"
)

// pgSimilaritySearch ranks by cosine distance and converts to similarity
// (1 - distance) in the same statement, so the threshold applies to the
// metric the caller sees.
const pgSimilaritySearch = `
SELECT id, document_name, chunk_text, chunk_index,
       1 - (embedding <=> ?) AS similarity
FROM document_chunks
WHERE 1 - (embedding <=> ?) > ?
ORDER BY embedding <=> ?
LIMIT ?`

// Store answers nearest-K queries over the chunk table. On PostgreSQL the
// pgvector <=> operator does the ranking; on SQLite vectors are loaded and
// compared in Go. Any similarity-path failure degrades to the most recent
// chunks instead of raising.
type Store struct {
	db     database.Database
	chunks persistence.ChunkStore
	logger *slog.Logger
}

// NewStore creates a Store.
func NewStore(db database.Database, chunks persistence.ChunkStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, chunks: chunks, logger: logger}
}

// Search returns up to topK chunks whose cosine similarity to queryVector
// exceeds threshold, ordered by descending similarity. Zero matches is a
// normal outcome. If the similarity query itself fails, the topK most
// recently created chunks are returned instead (similarity zero,
// unordered by relevance).
func (s *Store) Search(ctx context.Context, queryVector []float32, threshold float64, topK int) ([]document.Match, error) {
	if topK <= 0 {
		topK = domainsearch.DefaultTopK
	}

	var (
		matches []document.Match
		err     error
	)
	if s.db.IsPostgres() {
		matches, err = s.searchPostgres(ctx, queryVector, threshold, topK)
	} else {
		matches, err = s.searchInMemory(ctx, queryVector, threshold, topK)
	}
	if err != nil {
		s.logger.Warn("similarity search unavailable, falling back to recent chunks", "error", err)
		return s.recentFallback(ctx, topK)
	}
	return matches, nil
}

func (s *Store) searchPostgres(ctx context.Context, queryVector []float32, threshold float64, topK int) ([]document.Match, error) {
	vec := pgvector.NewVector(queryVector)

	var rows []struct {
		ID           int64   `gorm:"column:id"`
		DocumentName string  `gorm:"column:document_name"`
		ChunkText    string  `gorm:"column:chunk_text"`
		ChunkIndex   int     `gorm:"column:chunk_index"`
		Similarity   float64 `gorm:"column:similarity"`
	}
	err := s.db.Session(ctx).Raw(pgSimilaritySearch, vec, vec, threshold, vec, topK).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	matches := make([]document.Match, len(rows))
	for i, row := range rows {
		matches[i] = document.NewMatch(row.ID, row.DocumentName, row.ChunkText, row.ChunkIndex, row.Similarity)
	}
	return matches, nil
}

// searchInMemory loads every chunk and ranks in Go. Acceptable for the
// SQLite deployments this path serves, which are small by construction.
func (s *Store) searchInMemory(ctx context.Context, queryVector []float32, threshold float64, topK int) ([]document.Match, error) {
	chunks, err := s.chunks.All(ctx)
	if err != nil {
		return nil, err
	}

	var matches []document.Match
	for _, chunk := range chunks {
		similarity := CosineSimilarity(queryVector, chunk.Embedding())
		if similarity > threshold {
			matches = append(matches, document.NewMatch(
				chunk.ID(), chunk.DocumentName(), chunk.ChunkText(), chunk.ChunkIndex(), similarity,
			))
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Similarity() > matches[j].Similarity()
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// recentFallback returns the topK most recently created chunks as a
// degraded-but-available result. Errors here yield an empty result, never
// a raised failure.
func (s *Store) recentFallback(ctx context.Context, topK int) ([]document.Match, error) {
	chunks, err := s.chunks.Recent(ctx, topK)
	if err != nil {
		s.logger.Error("recency fallback failed", "error", err)
		return []document.Match{}, nil
	}

	matches := make([]document.Match, len(chunks))
	for i, chunk := range chunks {
		matches[i] = document.NewMatch(
			chunk.ID(), chunk.DocumentName(), chunk.ChunkText(), chunk.ChunkIndex(), 0,
		)
	}
	return matches, nil
}

var _ domainsearch.Searcher = (*Store)(nil)
