package document

import "time"

// ProcessingRecord tracks the ingestion state of a single document.
// There is at most one record per document name; re-processing a document
// overwrites the existing record rather than creating a new one.
type ProcessingRecord struct {
	documentName string
	status       ProcessingStatus
	chunksCount  int
	errorMessage string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewProcessingRecord creates a record in the processing state for a fresh
// ingestion run. Starting a run on an existing record resets it.
func NewProcessingRecord(documentName string) ProcessingRecord {
	now := time.Now().UTC()
	return ProcessingRecord{
		documentName: documentName,
		status:       StatusProcessing,
		createdAt:    now,
		updatedAt:    now,
	}
}

// RestoreProcessingRecord rebuilds a record from persisted fields.
func RestoreProcessingRecord(
	documentName string,
	status ProcessingStatus,
	chunksCount int,
	errorMessage string,
	createdAt time.Time,
	updatedAt time.Time,
) ProcessingRecord {
	return ProcessingRecord{
		documentName: documentName,
		status:       status,
		chunksCount:  chunksCount,
		errorMessage: errorMessage,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// DocumentName returns the owning document's name.
func (r ProcessingRecord) DocumentName() string { return r.documentName }

// Status returns the current processing status.
func (r ProcessingRecord) Status() ProcessingStatus { return r.status }

// ChunksCount returns the number of chunks stored for the document.
func (r ProcessingRecord) ChunksCount() int { return r.chunksCount }

// ErrorMessage returns the failure message, empty unless status is failed.
func (r ProcessingRecord) ErrorMessage() string { return r.errorMessage }

// CreatedAt returns the record creation time.
func (r ProcessingRecord) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last mutation time.
func (r ProcessingRecord) UpdatedAt() time.Time { return r.updatedAt }

// Complete returns a copy of the record marked completed with the number of
// chunks actually stored. The chunk count reflects stored chunks, not
// attempted ones, so the progress view and the record never disagree.
func (r ProcessingRecord) Complete(storedChunks int) ProcessingRecord {
	r.status = StatusCompleted
	r.chunksCount = storedChunks
	r.errorMessage = ""
	r.updatedAt = time.Now().UTC()
	return r
}

// Fail returns a copy of the record marked failed with the given message.
func (r ProcessingRecord) Fail(message string) ProcessingRecord {
	r.status = StatusFailed
	r.errorMessage = message
	r.updatedAt = time.Now().UTC()
	return r
}
