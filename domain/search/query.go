// Package search defines the retrieval contracts: similarity search over
// stored chunk embeddings and the token budget for context assembly.
package search

import (
	"context"

	"github.com/verdantiq/greenrag/domain/document"
)

// Default retrieval parameters.
const (
	DefaultTopK      = 5
	DefaultThreshold = 0.75
)

// Request describes one similarity search.
type Request struct {
	query     string
	threshold float64
	topK      int
}

// NewRequest creates a Request, applying defaults for unset parameters.
func NewRequest(query string, threshold float64, topK int) Request {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return Request{query: query, threshold: threshold, topK: topK}
}

// Query returns the query text.
func (r Request) Query() string { return r.query }

// Threshold returns the minimum similarity a match must exceed.
func (r Request) Threshold() float64 { return r.threshold }

// TopK returns the maximum number of matches to return.
func (r Request) TopK() int { return r.topK }

// Searcher answers "nearest-K chunks to a query vector above a similarity
// floor". Implementations must not raise when the similarity capability is
// unavailable; they degrade to a recency-ordered fallback instead. Zero
// matches above the threshold is a normal outcome, not an error.
type Searcher interface {
	Search(ctx context.Context, queryVector []float32, threshold float64, topK int) ([]document.Match, error)
}
