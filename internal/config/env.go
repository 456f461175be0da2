// Package config provides application configuration loaded from the
// environment with optional .env files.
package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the prefix for all environment variables.
const envPrefix = "GREENRAG"

// EnvConfig holds all environment-based configuration.
// Field names map to environment variables with the GREENRAG_ prefix.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: GREENRAG_HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: GREENRAG_PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory for the blob store and the SQLite
	// fallback database.
	// Env: GREENRAG_DATA_DIR
	// Default: ~/.greenrag
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: GREENRAG_DB_URL
	// Default: sqlite:///{data_dir}/greenrag.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: GREENRAG_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: GREENRAG_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// AdminAPIKey gates mutating HTTP routes. Empty disables the gate.
	// Env: GREENRAG_ADMIN_API_KEY
	AdminAPIKey string `envconfig:"ADMIN_API_KEY"`

	// Embedding configures the embedding endpoint.
	Embedding EndpointEnv `envconfig:"EMBEDDING"`

	// Generation configures the chat-completion endpoint.
	Generation EndpointEnv `envconfig:"GENERATION"`

	// EmbeddingDim is the embedding vector dimension, fixed by the provider.
	// Env: GREENRAG_EMBEDDING_DIM (default: 1536)
	EmbeddingDim int `envconfig:"EMBEDDING_DIM" default:"1536"`

	// ChunkSize is the segmenter's target chunk size in characters.
	// Env: GREENRAG_CHUNK_SIZE (default: 600)
	ChunkSize int `envconfig:"CHUNK_SIZE" default:"600"`

	// ChunkOverlap is the segmenter's overlap in characters.
	// Env: GREENRAG_CHUNK_OVERLAP (default: 100)
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"100"`

	// SearchThreshold is the minimum similarity for retrieval matches.
	// Env: GREENRAG_SEARCH_THRESHOLD (default: 0.75)
	SearchThreshold float64 `envconfig:"SEARCH_THRESHOLD" default:"0.75"`

	// SearchTopK is the maximum number of retrieval matches.
	// Env: GREENRAG_SEARCH_TOP_K (default: 5)
	SearchTopK int `envconfig:"SEARCH_TOP_K" default:"5"`

	// IngestRate is the maximum chunk embed+store operations per second,
	// applied between chunks to respect provider rate limits.
	// Env: GREENRAG_INGEST_RATE (default: 5)
	IngestRate float64 `envconfig:"INGEST_RATE" default:"5"`

	// PregenPauseEvery is how many batch items to process before pausing.
	// Env: GREENRAG_PREGEN_PAUSE_EVERY (default: 10)
	PregenPauseEvery int `envconfig:"PREGEN_PAUSE_EVERY" default:"10"`

	// PregenPause is the pause duration between batch groups, in seconds.
	// Env: GREENRAG_PREGEN_PAUSE (default: 2.0)
	PregenPause float64 `envconfig:"PREGEN_PAUSE" default:"2.0"`
}

// EndpointEnv holds environment configuration for an AI endpoint.
type EndpointEnv struct {
	// BaseURL is the base URL for the endpoint.
	// Env: GREENRAG_*_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the model identifier.
	// Env: GREENRAG_*_MODEL
	Model string `envconfig:"MODEL"`

	// APIKey is the API key for authentication.
	// Env: GREENRAG_*_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Timeout is the request timeout in seconds.
	// Env: GREENRAG_*_TIMEOUT (default: 60)
	Timeout float64 `envconfig:"TIMEOUT" default:"60"`
}

// TimeoutDuration returns the endpoint timeout as a time.Duration.
func (e EndpointEnv) TimeoutDuration() time.Duration {
	return time.Duration(e.Timeout * float64(time.Second))
}

// LoadFromEnv reads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize trims whitespace from string fields that commonly pick up
// stray spaces in .env files.
func (c EnvConfig) Normalize() EnvConfig {
	c.Host = strings.TrimSpace(c.Host)
	c.DataDir = strings.TrimSpace(c.DataDir)
	c.DBURL = strings.TrimSpace(c.DBURL)
	c.LogLevel = strings.TrimSpace(c.LogLevel)
	c.LogFormat = strings.TrimSpace(c.LogFormat)
	c.AdminAPIKey = strings.TrimSpace(c.AdminAPIKey)
	return c
}
