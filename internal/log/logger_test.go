package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantiq/greenrag/internal/config"
	"github.com/verdantiq/greenrag/internal/log"
)

func TestJSONFormatEmitsParsableLines(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.Info("document processed", "document", "report.txt", "chunks", 12)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "document processed", line["msg"])
	assert.Equal(t, "report.txt", line["document"])
	assert.EqualValues(t, 12, line["chunks"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithWriter(&buf, config.LogFormatJSON, "WARN")

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestPrettyFormatIncludesMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithWriter(&buf, config.LogFormatPretty, "DEBUG")

	logger.Debug("starting up", "addr", "0.0.0.0:8080")

	out := buf.String()
	assert.Contains(t, out, "starting up")
	assert.Contains(t, out, "addr")
	assert.Contains(t, out, "0.0.0.0:8080")
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := log.WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", log.RequestID(ctx))
	assert.Empty(t, log.RequestID(context.Background()))
}
