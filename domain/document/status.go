// Package document holds the core types for document ingestion:
// processing records, chunks, and their store contracts.
package document

// ProcessingStatus represents the lifecycle state of a document's ingestion.
type ProcessingStatus string

// ProcessingStatus values.
const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// IsTerminal returns true if the status represents a terminal state.
func (s ProcessingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether a record may move from s to next.
// Transitions only move forward (pending → processing → completed|failed),
// except that any state may return to processing when a fresh re-process
// of the document starts.
func (s ProcessingStatus) CanTransition(next ProcessingStatus) bool {
	switch next {
	case StatusProcessing:
		return true
	case StatusCompleted, StatusFailed:
		return s == StatusProcessing
	case StatusPending:
		return false
	default:
		return false
	}
}
