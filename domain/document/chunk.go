package document

import "time"

// Chunk is a bounded-length segment of a document's extracted text paired
// with its embedding vector. Chunks are identified by (document name, index);
// the index is a dense 0-based sequence per document.
type Chunk struct {
	id           int64
	documentName string
	chunkIndex   int
	chunkText    string
	embedding    []float32
	createdAt    time.Time
}

// NewChunk creates a chunk ready for insertion (no ID assigned yet).
func NewChunk(documentName string, chunkIndex int, chunkText string, embedding []float32) Chunk {
	vec := make([]float32, len(embedding))
	copy(vec, embedding)
	return Chunk{
		documentName: documentName,
		chunkIndex:   chunkIndex,
		chunkText:    chunkText,
		embedding:    vec,
		createdAt:    time.Now().UTC(),
	}
}

// RestoreChunk rebuilds a chunk from persisted fields.
func RestoreChunk(id int64, documentName string, chunkIndex int, chunkText string, embedding []float32, createdAt time.Time) Chunk {
	return Chunk{
		id:           id,
		documentName: documentName,
		chunkIndex:   chunkIndex,
		chunkText:    chunkText,
		embedding:    embedding,
		createdAt:    createdAt,
	}
}

// ID returns the chunk's database identifier (0 before insertion).
func (c Chunk) ID() int64 { return c.id }

// DocumentName returns the owning document's name.
func (c Chunk) DocumentName() string { return c.documentName }

// ChunkIndex returns the chunk's position within the document.
func (c Chunk) ChunkIndex() int { return c.chunkIndex }

// ChunkText returns the chunk text.
func (c Chunk) ChunkText() string { return c.chunkText }

// Embedding returns a copy of the chunk's embedding vector.
func (c Chunk) Embedding() []float32 {
	vec := make([]float32, len(c.embedding))
	copy(vec, c.embedding)
	return vec
}

// CreatedAt returns the chunk creation time.
func (c Chunk) CreatedAt() time.Time { return c.createdAt }

// Match is a retrieval result: a chunk together with its similarity to the
// query vector. Similarity is 1 - cosine distance, in [-1, 1].
type Match struct {
	chunkID      int64
	documentName string
	chunkText    string
	chunkIndex   int
	similarity   float64
}

// NewMatch creates a Match.
func NewMatch(chunkID int64, documentName, chunkText string, chunkIndex int, similarity float64) Match {
	return Match{
		chunkID:      chunkID,
		documentName: documentName,
		chunkText:    chunkText,
		chunkIndex:   chunkIndex,
		similarity:   similarity,
	}
}

// ChunkID returns the matched chunk's identifier.
func (m Match) ChunkID() int64 { return m.chunkID }

// DocumentName returns the matched chunk's document name.
func (m Match) DocumentName() string { return m.documentName }

// ChunkText returns the matched chunk's text.
func (m Match) ChunkText() string { return m.chunkText }

// ChunkIndex returns the matched chunk's position within its document.
func (m Match) ChunkIndex() int { return m.chunkIndex }

// Similarity returns the cosine similarity to the query vector.
func (m Match) Similarity() float64 { return m.similarity }
