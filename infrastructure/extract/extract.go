// Package extract converts raw document bytes into plain text.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFormat indicates the document's format has no extractor.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrBinaryContent indicates a supposedly plain-text document contains
// bytes that do not decode as UTF-8 text.
var ErrBinaryContent = errors.New("document is not valid text")

// Extractor converts raw document bytes into plain text. It makes no
// judgement about whether the text is long enough to ingest; that decision
// belongs to the pipeline.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() Extractor {
	return Extractor{}
}

// Extract returns the plain text of a document, dispatching on the file
// extension: PDF documents go through the PDF content extractor, anything
// else is treated as UTF-8 text.
func (e Extractor) Extract(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("extract pdf text: %w", err)
		}
		return text, nil
	case ".txt", ".md", ".csv", "":
		return extractPlain(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// extractPlain validates and normalizes UTF-8 text content.
func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrBinaryContent
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.TrimSpace(text), nil
}
