package objectstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilesystemStore stores blobs as files under a single directory. Object
// names are flat; nested paths are rejected at upload.
type FilesystemStore struct {
	dir string
}

// NewFilesystemStore creates a FilesystemStore rooted at dir, creating the
// directory if needed.
func NewFilesystemStore(dir string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create object store dir: %w", err)
	}
	return &FilesystemStore{dir: dir}, nil
}

// Upload writes a blob. An existing object with the same name is
// overwritten.
func (s *FilesystemStore) Upload(_ context.Context, name string, data []byte) error {
	path, err := s.objectPath(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write object %s: %w", name, err)
	}
	return nil
}

// Download reads a blob.
func (s *FilesystemStore) Download(_ context.Context, name string) ([]byte, error) {
	path, err := s.objectPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, name)
		}
		return nil, fmt.Errorf("read object %s: %w", name, err)
	}
	return data, nil
}

// Remove deletes a blob. Removing a missing object is not an error.
func (s *FilesystemStore) Remove(_ context.Context, name string) error {
	path, err := s.objectPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove object %s: %w", name, err)
	}
	return nil
}

// List returns all stored objects sorted by name.
func (s *FilesystemStore) List(_ context.Context) ([]ObjectInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	var objects []ObjectInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat object %s: %w", entry.Name(), err)
		}
		objects = append(objects, NewObjectInfo(entry.Name(), info.Size(), info.ModTime().UTC()))
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Name() < objects[j].Name() })
	return objects, nil
}

// objectPath resolves an object name inside the store directory, rejecting
// names that would escape it.
func (s *FilesystemStore) objectPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}

var _ Store = (*FilesystemStore)(nil)
