package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig is the resolved application configuration: environment values
// plus derived defaults (data directory, SQLite fallback database URL).
type AppConfig struct {
	env     EnvConfig
	dataDir string
	dbURL   string
}

// NewAppConfig resolves an EnvConfig into an AppConfig.
func NewAppConfig(env EnvConfig) (AppConfig, error) {
	dataDir := env.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return AppConfig{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".greenrag")
	}

	dbURL := env.DBURL
	if dbURL == "" {
		dbURL = "sqlite:///" + filepath.Join(dataDir, "greenrag.db")
	}

	return AppConfig{env: env, dataDir: dataDir, dbURL: dbURL}, nil
}

// WithOverrides returns a copy with the host and port replaced where the
// given values are set. Command-line flags use this to win over the
// environment.
func (c AppConfig) WithOverrides(host string, port int) AppConfig {
	if host != "" {
		c.env.Host = host
	}
	if port > 0 {
		c.env.Port = port
	}
	return c
}

// Addr returns the host:port the HTTP server binds to.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.env.Host, c.env.Port)
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// BlobDir returns the directory for the filesystem blob store.
func (c AppConfig) BlobDir() string { return filepath.Join(c.dataDir, "documents") }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the configured log level.
func (c AppConfig) LogLevel() string { return c.env.LogLevel }

// LogFormat returns the configured log format.
func (c AppConfig) LogFormat() LogFormat {
	if c.env.LogFormat == string(LogFormatJSON) {
		return LogFormatJSON
	}
	return LogFormatPretty
}

// AdminAPIKey returns the admin API key (empty disables the auth gate).
func (c AppConfig) AdminAPIKey() string { return c.env.AdminAPIKey }

// Embedding returns the embedding endpoint configuration.
func (c AppConfig) Embedding() EndpointEnv { return c.env.Embedding }

// Generation returns the chat-completion endpoint configuration.
func (c AppConfig) Generation() EndpointEnv { return c.env.Generation }

// EmbeddingDim returns the embedding vector dimension.
func (c AppConfig) EmbeddingDim() int { return c.env.EmbeddingDim }

// ChunkSize returns the segmenter target chunk size in characters.
func (c AppConfig) ChunkSize() int { return c.env.ChunkSize }

// ChunkOverlap returns the segmenter overlap in characters.
func (c AppConfig) ChunkOverlap() int { return c.env.ChunkOverlap }

// SearchThreshold returns the minimum retrieval similarity.
func (c AppConfig) SearchThreshold() float64 { return c.env.SearchThreshold }

// SearchTopK returns the maximum number of retrieval matches.
func (c AppConfig) SearchTopK() int { return c.env.SearchTopK }

// IngestRate returns the per-second chunk processing rate limit.
func (c AppConfig) IngestRate() float64 { return c.env.IngestRate }

// PregenPauseEvery returns how many pregeneration items run between pauses.
func (c AppConfig) PregenPauseEvery() int { return c.env.PregenPauseEvery }

// PregenPause returns the pregeneration pause length in seconds.
func (c AppConfig) PregenPause() float64 { return c.env.PregenPause }

// PregenPauseDuration returns the pregeneration pause as a time.Duration.
func (c AppConfig) PregenPauseDuration() time.Duration {
	return time.Duration(c.env.PregenPause * float64(time.Second))
}

// EnsureDataDir creates the data and blob directories if missing.
func (c AppConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.MkdirAll(c.BlobDir(), 0o755); err != nil {
		return fmt.Errorf("create blob dir: %w", err)
	}
	return nil
}
