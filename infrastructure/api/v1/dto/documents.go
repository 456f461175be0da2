// Package dto defines the wire shapes of the v1 API.
package dto

import "time"

// DocumentUploadResponse is returned after a document upload.
type DocumentUploadResponse struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	ChunksCount int    `json:"chunks_count"`
	Error       string `json:"error,omitempty"`
}

// DocumentRecord is one processing record in a listing.
type DocumentRecord struct {
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	ChunksCount int       `json:"chunks_count"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DocumentListResponse lists processing records, newest first.
type DocumentListResponse struct {
	Documents []DocumentRecord `json:"documents"`
}

// DocumentProgress is one document in the live status view.
type DocumentProgress struct {
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	ChunksCount int       `json:"chunks_count"`
	LiveChunks  int       `json:"live_chunks"`
	Error       string    `json:"error,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DocumentStatusResponse is the live processing status view.
type DocumentStatusResponse struct {
	Documents []DocumentProgress `json:"documents"`
}
