package segment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyInput(t *testing.T) {
	s := NewSegmenter(600, 100)
	assert.Empty(t, s.Split(""))
	assert.Empty(t, s.Split("   \n\n  "))
}

func TestSplitDropsShortInput(t *testing.T) {
	s := NewSegmenter(600, 100)
	assert.Empty(t, s.Split("Too short to keep."))
}

func TestSplitSingleChunk(t *testing.T) {
	s := NewSegmenter(600, 100)
	text := "Carbon pricing mechanisms put a direct cost on greenhouse gas emissions. " +
		"Companies subject to a carbon fee must account for it in their planning."
	chunks := s.Split(text)
	require.Len(t, chunks, 1)
	assert.GreaterOrEqual(t, utf8.RuneCountInString(chunks[0]), MinChunkLen)
}

func TestSplitLongRepeatedText(t *testing.T) {
	sentence := "The carbon fee threshold applies to facilities emitting more than the regulated annual amount of carbon dioxide equivalent. "
	text := strings.Repeat(sentence, 100)
	require.Greater(t, len(text), 10000)

	s := NewSegmenter(600, 100)
	chunks := s.Split(text)

	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		runes := utf8.RuneCountInString(chunk)
		assert.GreaterOrEqual(t, runes, MinChunkLen, "chunk %d below floor", i)
		assert.LessOrEqual(t, runes, 700, "chunk %d far above target size", i)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestSplitOverlapSeedsNextChunk(t *testing.T) {
	sentence := "Rising regulatory pressure on industrial emitters continues to reshape capital allocation decisions across carbon intensive sectors. "
	text := strings.Repeat(sentence, 30)

	s := NewSegmenter(300, 100)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	// Each chunk after the first starts with the trailing words of its
	// predecessor (overlap/10 = 10 words).
	words := strings.Fields(chunks[0])
	require.GreaterOrEqual(t, len(words), 10)
	seed := strings.Join(words[len(words)-10:], " ")
	assert.True(t, strings.HasPrefix(chunks[1], seed), "chunk 1 should start with the overlap seed")
}

func TestSplitZeroOverlap(t *testing.T) {
	sentence := "Scope two emissions cover purchased electricity and are measured separately from direct fuel combustion on site. "
	text := strings.Repeat(sentence, 20)

	s := NewSegmenter(400, 0)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.GreaterOrEqual(t, utf8.RuneCountInString(chunk), MinChunkLen)
	}
}

func TestSplitFullWidthPunctuation(t *testing.T) {
	text := strings.Repeat("企業は気候変動リスクを評価し、移行計画を策定する必要があります。", 20)
	s := NewSegmenter(200, 50)
	chunks := s.Split(text)
	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.GreaterOrEqual(t, utf8.RuneCountInString(chunk), MinChunkLen)
	}
}

func TestSplitUnits(t *testing.T) {
	units := splitUnits("First sentence. Second one!\nThird?")
	assert.Equal(t, []string{"First sentence.", "Second one!", "Third?"}, units)
}

func TestTrailingWords(t *testing.T) {
	assert.Equal(t, "", trailingWords("a b c", 0))
	assert.Equal(t, "b c", trailingWords("a b c", 2))
	assert.Equal(t, "a b c", trailingWords("a b c", 5))
}
