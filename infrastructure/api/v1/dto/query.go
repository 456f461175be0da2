package dto

// QueryRequest asks a question over the ingested corpus.
type QueryRequest struct {
	Query     string   `json:"query" validate:"required,min=1,max=2000"`
	Threshold *float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	TopK      *int     `json:"top_k,omitempty" validate:"omitempty,gte=1,lte=50"`
}

// QueryMatch is one retrieved chunk backing an answer.
type QueryMatch struct {
	DocumentName string  `json:"document_name"`
	ChunkIndex   int     `json:"chunk_index"`
	ChunkText    string  `json:"chunk_text"`
	Similarity   float64 `json:"similarity"`
}

// QueryResponse carries the answer and the matches it was grounded on.
type QueryResponse struct {
	Answer  string       `json:"answer"`
	Matches []QueryMatch `json:"matches"`
}
