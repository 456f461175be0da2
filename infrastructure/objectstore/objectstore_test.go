package objectstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"spaces collapse", "annual  carbon report.pdf", "annual_carbon_report.pdf"},
		{"special characters", "Q3 (final)!.pdf", "Q3_final.pdf"},
		{"leading trailing stripped", "__report__.txt", "report.txt"},
		{"empty base defaults", "???.pdf", "document.pdf"},
		{"no extension", "notes", "notes"},
		{"uppercase extension lowered", "REPORT.PDF", "REPORT.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeName(tt.raw))
		})
	}
}

func TestStampName(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "report_20260314T092653.pdf", StampName("report.pdf", now))
	assert.Equal(t, "notes_20260314T092653", StampName("notes", now))
}

func TestFilesystemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Upload(ctx, "a.txt", []byte("hello")))

	data, err := store.Download(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	objects, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "a.txt", objects[0].Name())
	assert.Equal(t, int64(5), objects[0].Size())

	require.NoError(t, store.Remove(ctx, "a.txt"))
	_, err = store.Download(ctx, "a.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// Removing again is not an error.
	assert.NoError(t, store.Remove(ctx, "a.txt"))
}

func TestFilesystemStoreRejectsPathTraversal(t *testing.T) {
	ctx := context.Background()
	store, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Upload(ctx, "../escape.txt", []byte("x")))
	assert.Error(t, store.Upload(ctx, "a/b.txt", []byte("x")))
	assert.Error(t, store.Upload(ctx, "", []byte("x")))
}
