package objectstore

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\w]+`)
	underscorePattern = regexp.MustCompile(`_+`)
)

// SanitizeName normalizes a raw file name for use as an object name:
// non-word characters become underscores, runs of underscores collapse,
// leading and trailing underscores are trimmed, and an empty result
// defaults to "document". The extension is sanitized separately and
// re-attached lowercased.
func SanitizeName(raw string) string {
	ext := strings.ToLower(filepath.Ext(raw))
	base := strings.TrimSuffix(raw, filepath.Ext(raw))

	base = nonWordPattern.ReplaceAllString(base, "_")
	base = underscorePattern.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	if base == "" {
		base = "document"
	}

	ext = nonWordPattern.ReplaceAllString(strings.TrimPrefix(ext, "."), "")
	if ext == "" {
		return base
	}
	return base + "." + ext
}

// StampName appends a timestamp before the extension so that repeated
// uploads of the same file name never collide.
func StampName(name string, now time.Time) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return base + "_" + now.UTC().Format("20060102T150405") + ext
}
