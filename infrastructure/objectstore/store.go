// Package objectstore provides the blob storage boundary for raw document
// files.
package objectstore

import (
	"context"
	"errors"
	"time"
)

// ErrObjectNotFound indicates the named object does not exist in the store.
var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	name      string
	size      int64
	updatedAt time.Time
}

// NewObjectInfo creates an ObjectInfo.
func NewObjectInfo(name string, size int64, updatedAt time.Time) ObjectInfo {
	return ObjectInfo{name: name, size: size, updatedAt: updatedAt}
}

// Name returns the object name.
func (o ObjectInfo) Name() string { return o.name }

// Size returns the object size in bytes.
func (o ObjectInfo) Size() int64 { return o.size }

// UpdatedAt returns the object's last modification time.
func (o ObjectInfo) UpdatedAt() time.Time { return o.updatedAt }

// Store is the object-store boundary: opaque blobs addressed by a
// sanitized name.
type Store interface {
	Upload(ctx context.Context, name string, data []byte) error
	Download(ctx context.Context, name string) ([]byte, error)
	Remove(ctx context.Context, name string) error
	List(ctx context.Context) ([]ObjectInfo, error)
}
