package advisory

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateEntry indicates an insert hit the unique constraint on the
// composite cache key: another writer won the race. Callers re-read and
// return the winner's row.
var ErrDuplicateEntry = errors.New("cache entry already exists")

// Entry is a persisted cache row: the composite key, the individual
// dimensions for queryability, and the serialized payload. Entries are
// write-once and never evicted.
type Entry struct {
	cacheKey   string
	kind       Kind
	dimensions Dimensions
	payload    string
	createdAt  time.Time
}

// NewEntry creates an entry for insertion. The payload is the serialized
// content: plain text for the scenario kind, JSON for the structured kinds.
func NewEntry(kind Kind, dimensions Dimensions, payload string) Entry {
	return Entry{
		cacheKey:   dimensions.CacheKey(kind),
		kind:       kind,
		dimensions: dimensions,
		payload:    payload,
		createdAt:  time.Now().UTC(),
	}
}

// RestoreEntry rebuilds an entry from persisted fields.
func RestoreEntry(kind Kind, dimensions Dimensions, payload string, createdAt time.Time) Entry {
	e := NewEntry(kind, dimensions, payload)
	e.createdAt = createdAt
	return e
}

// CacheKey returns the composite key.
func (e Entry) CacheKey() string { return e.cacheKey }

// Kind returns the content kind the entry belongs to.
func (e Entry) Kind() Kind { return e.kind }

// Dimensions returns the dimension tuple.
func (e Entry) Dimensions() Dimensions { return e.dimensions }

// Payload returns the serialized payload.
func (e Entry) Payload() string { return e.payload }

// CreatedAt returns the entry creation time.
func (e Entry) CreatedAt() time.Time { return e.createdAt }

// CacheStore persists advisory cache entries, one table per content kind.
type CacheStore interface {
	// Get returns the entry for a kind and composite key.
	Get(ctx context.Context, kind Kind, cacheKey string) (Entry, error)
	// Insert stores a new entry. Returns ErrDuplicateEntry if a row with the
	// same composite key already exists.
	Insert(ctx context.Context, entry Entry) error
}
