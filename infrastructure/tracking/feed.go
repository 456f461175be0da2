// Package tracking provides the processing-status change feed and the
// progress projection the admin view consumes.
package tracking

import (
	"sync"

	"github.com/verdantiq/greenrag/domain/document"
)

// EventKind identifies a change-feed event type.
type EventKind string

// EventKind values.
const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// Table identifies the table an event originated from.
type Table string

// Table values.
const (
	TableProcessing Table = "document_processing"
	TableChunks     Table = "document_chunks"
)

// Event is one change notification. Processing-table events carry the
// record; chunk-table events carry the chunk identity (document name and
// chunk index). Chunk delete events clear a whole document and carry index
// -1.
type Event struct {
	kind         EventKind
	table        Table
	record       document.ProcessingRecord
	hasRecord    bool
	documentName string
	chunkIndex   int
}

// NewRecordEvent creates a processing-table event.
func NewRecordEvent(kind EventKind, record document.ProcessingRecord) Event {
	return Event{
		kind:         kind,
		table:        TableProcessing,
		record:       record,
		hasRecord:    true,
		documentName: record.DocumentName(),
		chunkIndex:   -1,
	}
}

// NewChunkEvent creates a chunk-table event for a single chunk identity.
func NewChunkEvent(kind EventKind, documentName string, chunkIndex int) Event {
	return Event{
		kind:         kind,
		table:        TableChunks,
		documentName: documentName,
		chunkIndex:   chunkIndex,
	}
}

// NewChunkClearEvent creates a chunk-table delete event covering every
// chunk of a document.
func NewChunkClearEvent(documentName string) Event {
	return NewChunkEvent(EventDelete, documentName, -1)
}

// Kind returns the event kind.
func (e Event) Kind() EventKind { return e.kind }

// Table returns the originating table.
func (e Event) Table() Table { return e.table }

// Record returns the processing record and whether the event carries one.
func (e Event) Record() (document.ProcessingRecord, bool) {
	return e.record, e.hasRecord
}

// DocumentName returns the document the event concerns.
func (e Event) DocumentName() string { return e.documentName }

// ChunkIndex returns the chunk index for chunk events, -1 for whole-document
// events.
func (e Event) ChunkIndex() int { return e.chunkIndex }

// Subscriber receives change-feed events.
type Subscriber interface {
	OnEvent(event Event)
}

// Feed is the subscription surface the persistence layer publishes change
// events to.
type Feed interface {
	Publish(event Event)
	Subscribe(subscriber Subscriber)
}

// MemoryFeed is an in-process Feed delivering events synchronously to all
// subscribers in subscription order.
type MemoryFeed struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewMemoryFeed creates a MemoryFeed.
func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{}
}

// Publish delivers the event to every subscriber.
func (f *MemoryFeed) Publish(event Event) {
	f.mu.RLock()
	subscribers := make([]Subscriber, len(f.subscribers))
	copy(subscribers, f.subscribers)
	f.mu.RUnlock()

	for _, s := range subscribers {
		s.OnEvent(event)
	}
}

// Subscribe registers a subscriber for future events.
func (f *MemoryFeed) Subscribe(subscriber Subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers = append(f.subscribers, subscriber)
}

var _ Feed = (*MemoryFeed)(nil)

// NopFeed discards all events. Used where no progress consumer exists
// (one-shot CLI ingestion).
type NopFeed struct{}

// Publish discards the event.
func (NopFeed) Publish(Event) {}

// Subscribe is a no-op.
func (NopFeed) Subscribe(Subscriber) {}

var _ Feed = NopFeed{}
