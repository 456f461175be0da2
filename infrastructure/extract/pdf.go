package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// extractPDF writes the PDF to a temp file, extracts the page content
// streams with pdfcpu, and decodes the text-show operators. This recovers
// the text of ordinary text-based PDFs; scanned PDFs without a text layer
// yield little or nothing, which the pipeline reports as "no readable text".
func extractPDF(data []byte) (string, error) {
	tmpDir, err := os.MkdirTemp("", "greenrag-pdf-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	inFile := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(inFile, data, 0o600); err != nil {
		return "", fmt.Errorf("write temp pdf: %w", err)
	}

	outDir := filepath.Join(tmpDir, "content")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create content dir: %w", err)
	}

	if err := api.ExtractContentFile(inFile, outDir, nil, nil); err != nil {
		return "", fmt.Errorf("extract content streams: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("read content dir: %w", err)
	}

	var pages []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			return "", fmt.Errorf("read content stream: %w", err)
		}
		if text := decodeTextOperators(string(raw)); text != "" {
			pages = append(pages, text)
		}
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

// Text-show operators in a PDF content stream: "(string) Tj", "(string) '"
// and "[(a) -250 (b)] TJ" arrays.
var (
	tjPattern      = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*(?:Tj|')`)
	tjArrayPattern = regexp.MustCompile(`\[((?:\\.|[^\]])*)\]\s*TJ`)
	strPattern     = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)
)

// decodeTextOperators pulls the literal strings out of a content stream's
// text-show operators and joins them with spaces. Kerning offsets inside TJ
// arrays are dropped.
func decodeTextOperators(stream string) string {
	var parts []string

	for _, m := range tjPattern.FindAllStringSubmatch(stream, -1) {
		if s := unescapePDFString(m[1]); s != "" {
			parts = append(parts, s)
		}
	}
	for _, m := range tjArrayPattern.FindAllStringSubmatch(stream, -1) {
		var run []string
		for _, sm := range strPattern.FindAllStringSubmatch(m[1], -1) {
			if s := unescapePDFString(sm[1]); s != "" {
				run = append(run, s)
			}
		}
		if len(run) > 0 {
			parts = append(parts, strings.Join(run, ""))
		}
	}

	return strings.Join(parts, " ")
}

// unescapePDFString resolves PDF literal-string escapes: \(, \), \\, \n,
// \r, \t and octal \ddd sequences.
func unescapePDFString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch next := s[i]; next {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '(', ')', '\\':
			b.WriteByte(next)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			oct := string(next)
			for len(oct) < 3 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7' {
				i++
				oct += string(s[i])
			}
			if code, err := strconv.ParseUint(oct, 8, 16); err == nil && code < 256 {
				b.WriteByte(byte(code))
			}
		default:
			b.WriteByte(next)
		}
	}
	return b.String()
}
