// Package segment splits extracted document text into overlapping,
// sentence-bounded chunks suitable for embedding.
package segment

import (
	"strings"
	"unicode/utf8"
)

// MinChunkLen is the floor below which a chunk is discarded as noise.
const MinChunkLen = 50

// Default segmentation parameters.
const (
	DefaultChunkSize = 600
	DefaultOverlap   = 100
)

// sentence-terminal runes. Half-width and full-width punctuation both end a
// unit; newlines do as well.
var terminators = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'。': {}, '．': {}, '！': {}, '？': {},
	'\n': {},
}

// Segmenter produces ordered chunk sequences from raw text. It is a
// heuristic splitter, deliberately lossy: no invariant ties chunk
// boundaries to grammatical units.
type Segmenter struct {
	chunkSize int
	overlap   int
}

// NewSegmenter creates a Segmenter with the given target chunk size and
// overlap, both in characters. Non-positive values fall back to defaults.
func NewSegmenter(chunkSize, overlap int) Segmenter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	return Segmenter{chunkSize: chunkSize, overlap: overlap}
}

// ChunkSize returns the target chunk size in characters.
func (s Segmenter) ChunkSize() int { return s.chunkSize }

// Overlap returns the overlap parameter in characters.
func (s Segmenter) Overlap() int { return s.overlap }

// Split segments text into chunks. Sentence-like units are accumulated
// greedily; when the next unit would push the buffer past the target size,
// the buffer is emitted and the next one is seeded with the trailing
// overlap/10 words of the emitted chunk. Chunks shorter than MinChunkLen
// are dropped. Empty or too-short input yields an empty slice; deciding
// whether that is an error belongs to the ingestion layer.
func (s Segmenter) Split(text string) []string {
	units := splitUnits(text)
	if len(units) == 0 {
		return nil
	}

	overlapWords := s.overlap / 10

	var chunks []string
	var buf strings.Builder

	for _, unit := range units {
		if buf.Len() > 0 && utf8.RuneCountInString(buf.String())+utf8.RuneCountInString(unit) > s.chunkSize {
			chunk := strings.TrimSpace(buf.String())
			if utf8.RuneCountInString(chunk) >= MinChunkLen {
				chunks = append(chunks, chunk)
			}
			buf.Reset()
			if seed := trailingWords(chunk, overlapWords); seed != "" {
				buf.WriteString(seed)
				buf.WriteByte(' ')
			}
		}
		buf.WriteString(unit)
		buf.WriteByte(' ')
	}

	if final := strings.TrimSpace(buf.String()); utf8.RuneCountInString(final) >= MinChunkLen {
		chunks = append(chunks, final)
	}

	return chunks
}

// splitUnits cuts text into sentence-like units on terminal punctuation and
// newlines, trimming whitespace and dropping empty units.
func splitUnits(text string) []string {
	var units []string
	var current strings.Builder

	flush := func() {
		if unit := strings.TrimSpace(current.String()); unit != "" {
			units = append(units, unit)
		}
		current.Reset()
	}

	for _, r := range text {
		if _, terminal := terminators[r]; terminal {
			if r != '\n' {
				current.WriteRune(r)
			}
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return units
}

// trailingWords returns the last n whitespace-separated words of text.
func trailingWords(text string, n int) string {
	if n <= 0 {
		return ""
	}
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[len(words)-n:], " ")
}
