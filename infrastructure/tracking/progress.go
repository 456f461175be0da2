package tracking

import (
	"sort"
	"sync"

	"github.com/verdantiq/greenrag/domain/document"
)

// ProgressView is one row in the progress snapshot: the processing record
// plus, for records still processing, the live count of chunks persisted
// so far.
type ProgressView struct {
	record     document.ProcessingRecord
	liveChunks int
}

// Record returns the processing record.
func (v ProgressView) Record() document.ProcessingRecord { return v.record }

// LiveChunks returns the number of chunks persisted so far. Zero for
// records not in the processing state.
func (v ProgressView) LiveChunks() int { return v.liveChunks }

// Progress is a read-side projection over the change feed: it tracks the
// current processing-record set and a live stored-chunk count per document
// in flight. Increments are keyed by chunk identity (document name, chunk
// index), so duplicate or out-of-order notifications never double-count.
type Progress struct {
	mu      sync.RWMutex
	records map[string]document.ProcessingRecord
	live    map[string]map[int]struct{}
}

// NewProgress creates a Progress and subscribes it to the feed.
func NewProgress(feed Feed) *Progress {
	p := &Progress{
		records: make(map[string]document.ProcessingRecord),
		live:    make(map[string]map[int]struct{}),
	}
	feed.Subscribe(p)
	return p
}

// OnEvent implements Subscriber.
func (p *Progress) OnEvent(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch event.Table() {
	case TableProcessing:
		p.applyRecordEvent(event)
	case TableChunks:
		p.applyChunkEvent(event)
	}
}

func (p *Progress) applyRecordEvent(event Event) {
	name := event.DocumentName()

	if event.Kind() == EventDelete {
		delete(p.records, name)
		delete(p.live, name)
		return
	}

	record, ok := event.Record()
	if !ok {
		return
	}
	p.records[name] = record

	switch {
	case record.Status().IsTerminal():
		// Terminal transition clears the live count.
		delete(p.live, name)
	case record.Status() == document.StatusProcessing:
		if _, exists := p.live[name]; !exists {
			p.live[name] = make(map[int]struct{})
		}
	}
}

func (p *Progress) applyChunkEvent(event Event) {
	name := event.DocumentName()

	if event.Kind() == EventDelete {
		// Whole-document clear (re-ingestion wipes prior chunks).
		if event.ChunkIndex() < 0 {
			delete(p.live, name)
		} else if set, ok := p.live[name]; ok {
			delete(set, event.ChunkIndex())
		}
		return
	}

	record, tracked := p.records[name]
	if !tracked || record.Status() != document.StatusProcessing {
		return
	}
	set, ok := p.live[name]
	if !ok {
		set = make(map[int]struct{})
		p.live[name] = set
	}
	set[event.ChunkIndex()] = struct{}{}
}

// Snapshot returns the current record set, most recently updated first,
// with live chunk counts for in-flight documents.
func (p *Progress) Snapshot() []ProgressView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	views := make([]ProgressView, 0, len(p.records))
	for name, record := range p.records {
		views = append(views, ProgressView{
			record:     record,
			liveChunks: len(p.live[name]),
		})
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].record.UpdatedAt().After(views[j].record.UpdatedAt())
	})
	return views
}

// LiveCount returns the live stored-chunk count for one document.
func (p *Progress) LiveCount(documentName string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.live[documentName])
}

var _ Subscriber = (*Progress)(nil)
