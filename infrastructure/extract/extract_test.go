package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract("report.txt", []byte("line one\r\nline two\n"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)
}

func TestExtractRejectsBinary(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract("report.txt", []byte{0xff, 0xfe, 0x00, 0x81})
	assert.ErrorIs(t, err, ErrBinaryContent)
}

func TestExtractUnsupportedFormat(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract("report.xlsx", []byte("whatever"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeTextOperators(t *testing.T) {
	tests := []struct {
		name     string
		stream   string
		expected string
	}{
		{
			name:     "simple Tj",
			stream:   `BT /F1 12 Tf (Hello carbon world) Tj ET`,
			expected: "Hello carbon world",
		},
		{
			name:     "TJ array joins fragments",
			stream:   `BT [(Car) -20 (bon)] TJ ET`,
			expected: "Carbon",
		},
		{
			name:     "escaped parens",
			stream:   `(fee \(per tonne\)) Tj`,
			expected: "fee (per tonne)",
		},
		{
			name:     "multiple operators",
			stream:   `(first) Tj (second) '`,
			expected: "first second",
		},
		{
			name:     "no text operators",
			stream:   `0 0 m 100 100 l S`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeTextOperators(tt.stream))
		})
	}
}

func TestUnescapePDFString(t *testing.T) {
	assert.Equal(t, "a(b)c", unescapePDFString(`a\(b\)c`))
	assert.Equal(t, "back\\slash", unescapePDFString(`back\\slash`))
	assert.Equal(t, "tab\there", unescapePDFString(`tab\there`))
	assert.Equal(t, "A", unescapePDFString(`\101`))
}
