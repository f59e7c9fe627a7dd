package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration. Field names map to
// environment variables with the UNIFLY_ prefix.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: UNIFLY_HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: UNIFLY_PORT (default: 8000)
	Port int `envconfig:"PORT" default:"8000"`

	// Environment selects the collections file config.<env>.yaml.
	// Env: UNIFLY_ENVIRONMENT (default: dev)
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`

	// ConfigDir is the directory holding the collections files.
	// Env: UNIFLY_CONFIG_DIR (default: config)
	ConfigDir string `envconfig:"CONFIG_DIR" default:"config"`

	// LogLevel is the log verbosity level.
	// Env: UNIFLY_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: UNIFLY_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// DocumentBackend selects the document store (mongo or memory).
	// Env: UNIFLY_DOCUMENT_BACKEND (default: mongo)
	DocumentBackend string `envconfig:"DOCUMENT_BACKEND" default:"mongo"`

	// VectorBackend selects the vector index (qdrant, sqlite, or memory).
	// Env: UNIFLY_VECTOR_BACKEND (default: qdrant)
	VectorBackend string `envconfig:"VECTOR_BACKEND" default:"qdrant"`

	// MongoURL is the MongoDB connection string.
	// Env: UNIFLY_MONGO_URL
	MongoURL string `envconfig:"MONGO_URL" default:"mongodb://localhost:27017"`

	// MongoDatabase is the primary document database name. The collections
	// file value takes precedence when present.
	// Env: UNIFLY_MONGO_DATABASE (default: unifly)
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"unifly"`

	// JoinerDatabase holds the join-table collections.
	// Env: UNIFLY_JOINER_DATABASE (default: joiner)
	JoinerDatabase string `envconfig:"JOINER_DATABASE" default:"joiner"`

	// SQLURL is the relational database URL for the account store
	// (sqlite:///path or postgres://...). Empty disables it.
	// Env: UNIFLY_SQL_URL
	SQLURL string `envconfig:"SQL_URL"`

	// Qdrant configures the Qdrant connection.
	Qdrant QdrantEnv `envconfig:"QDRANT"`

	// Embedding configures the embedding endpoint.
	Embedding EmbeddingEnv `envconfig:"EMBEDDING"`

	// ChunkSize is the global chunk size in runes.
	// Env: UNIFLY_CHUNK_SIZE (default: 1000)
	ChunkSize int `envconfig:"CHUNK_SIZE" default:"1000"`

	// ChunkOverlap is the global chunk overlap in runes.
	// Env: UNIFLY_CHUNK_OVERLAP (default: 100)
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"100"`

	// CORSOrigins is a comma-separated list of allowed origins. The
	// collections file value takes precedence when present.
	// Env: UNIFLY_CORS_ORIGINS
	CORSOrigins string `envconfig:"CORS_ORIGINS"`

	// SearchLimit is the default semantic search result limit.
	// Env: UNIFLY_SEARCH_LIMIT (default: 10)
	SearchLimit int `envconfig:"SEARCH_LIMIT" default:"10"`
}

// QdrantEnv holds environment configuration for Qdrant.
type QdrantEnv struct {
	// Host is the Qdrant host.
	// Env: UNIFLY_QDRANT_HOST (default: localhost)
	Host string `envconfig:"HOST" default:"localhost"`

	// Port is the Qdrant gRPC port.
	// Env: UNIFLY_QDRANT_PORT (default: 6334)
	Port int `envconfig:"PORT" default:"6334"`

	// APIKey is the API key for cloud Qdrant.
	// Env: UNIFLY_QDRANT_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// UseTLS enables TLS (required for cloud Qdrant).
	// Env: UNIFLY_QDRANT_USE_TLS (default: false)
	UseTLS bool `envconfig:"USE_TLS" default:"false"`
}

// EmbeddingEnv holds environment configuration for the embedding endpoint.
type EmbeddingEnv struct {
	// BaseURL is the endpoint base URL (empty for the provider default).
	// Env: UNIFLY_EMBEDDING_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the embedding model identifier.
	// Env: UNIFLY_EMBEDDING_MODEL (default: text-embedding-3-small)
	Model string `envconfig:"MODEL" default:"text-embedding-3-small"`

	// APIKey is the API key for authentication.
	// Env: UNIFLY_EMBEDDING_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Dimensions is the embedding vector size.
	// Env: UNIFLY_EMBEDDING_DIMENSIONS (default: 1536)
	Dimensions int `envconfig:"DIMENSIONS" default:"1536"`

	// Timeout is the request timeout in seconds.
	// Env: UNIFLY_EMBEDDING_TIMEOUT (default: 60)
	Timeout float64 `envconfig:"TIMEOUT" default:"60"`

	// MaxRetries is the maximum retry count.
	// Env: UNIFLY_EMBEDDING_MAX_RETRIES (default: 5)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"5"`
}

// LoadFromEnv reads configuration from UNIFLY_-prefixed environment
// variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("UNIFLY", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts the environment configuration to an AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	embedding := NewEmbeddingConfig()
	embedding.baseURL = e.Embedding.BaseURL
	if e.Embedding.Model != "" {
		embedding.model = e.Embedding.Model
	}
	embedding.apiKey = e.Embedding.APIKey
	if e.Embedding.Dimensions > 0 {
		embedding.dimensions = e.Embedding.Dimensions
	}
	if e.Embedding.Timeout > 0 {
		embedding.timeout = time.Duration(e.Embedding.Timeout * float64(time.Second))
	}
	if e.Embedding.MaxRetries > 0 {
		embedding.maxRetries = e.Embedding.MaxRetries
	}

	opts := []Option{
		WithHost(e.Host),
		WithPort(e.Port),
		WithEnvironment(e.Environment),
		WithConfigDir(e.ConfigDir),
		WithLogLevel(e.LogLevel),
		WithLogFormat(parseLogFormat(e.LogFormat)),
		WithDocumentBackend(Backend(strings.ToLower(e.DocumentBackend))),
		WithVectorBackend(Backend(strings.ToLower(e.VectorBackend))),
		WithMongoURL(e.MongoURL),
		WithMongoDatabase(e.MongoDatabase),
		WithJoinerDatabase(e.JoinerDatabase),
		WithSQLURL(e.SQLURL),
		WithQdrant(e.Qdrant.Host, e.Qdrant.Port, e.Qdrant.APIKey, e.Qdrant.UseTLS),
		WithEmbedding(embedding),
		WithChunking(e.ChunkSize, e.ChunkOverlap),
		WithSearchLimit(e.SearchLimit),
	}
	if e.CORSOrigins != "" {
		opts = append(opts, WithCORSOrigins(splitCSV(e.CORSOrigins)))
	}
	return NewAppConfigWithOptions(opts...)
}

func parseLogFormat(s string) LogFormat {
	if strings.EqualFold(s, string(LogFormatJSON)) {
		return LogFormatJSON
	}
	return LogFormatPretty
}

// splitCSV splits a comma-separated string, trimming whitespace and
// dropping empty elements.
func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
