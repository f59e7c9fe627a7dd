// Package config provides application configuration.
package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	DefaultHost              = "0.0.0.0"
	DefaultPort              = 8000
	DefaultLogLevel          = "INFO"
	DefaultEnvironment       = "dev"
	DefaultMongoURL          = "mongodb://localhost:27017"
	DefaultMongoDatabase     = "unifly"
	DefaultJoinerDatabase    = "joiner"
	DefaultQdrantHost        = "localhost"
	DefaultQdrantPort        = 6334
	DefaultEmbeddingModel    = "text-embedding-3-small"
	DefaultEmbeddingSize     = 1536
	DefaultEmbeddingTimeout  = 60 * time.Second
	DefaultEmbeddingRetries  = 5
	DefaultChunkSize         = 1000
	DefaultChunkOverlap      = 100
	DefaultMongoTimeout      = 5 * time.Second
	DefaultMongoMaxPoolSize  = 50
	DefaultQdrantTimeout     = 10 * time.Second
	DefaultSearchLimit       = 10
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Backend identifies a pluggable storage backend.
type Backend string

// Backend values. The memory backends hold data in process and exist for
// tests and local development without external services.
const (
	BackendMemory Backend = "memory"
	BackendMongo  Backend = "mongo"
	BackendQdrant Backend = "qdrant"
	BackendSQLite Backend = "sqlite"
)

// EmbeddingConfig configures the embedding provider endpoint.
type EmbeddingConfig struct {
	baseURL    string
	model      string
	apiKey     string
	dimensions int
	timeout    time.Duration
	maxRetries int
}

// NewEmbeddingConfig creates an EmbeddingConfig with defaults.
func NewEmbeddingConfig() EmbeddingConfig {
	return EmbeddingConfig{
		model:      DefaultEmbeddingModel,
		dimensions: DefaultEmbeddingSize,
		timeout:    DefaultEmbeddingTimeout,
		maxRetries: DefaultEmbeddingRetries,
	}
}

// BaseURL returns the endpoint base URL (empty for the provider default).
func (e EmbeddingConfig) BaseURL() string { return e.baseURL }

// Model returns the embedding model identifier.
func (e EmbeddingConfig) Model() string { return e.model }

// APIKey returns the API key.
func (e EmbeddingConfig) APIKey() string { return e.apiKey }

// Dimensions returns the embedding vector size.
func (e EmbeddingConfig) Dimensions() int { return e.dimensions }

// Timeout returns the request timeout.
func (e EmbeddingConfig) Timeout() time.Duration { return e.timeout }

// MaxRetries returns the maximum retry count.
func (e EmbeddingConfig) MaxRetries() int { return e.maxRetries }

// IsConfigured reports whether an API key is present.
func (e EmbeddingConfig) IsConfigured() bool { return e.apiKey != "" }

// QdrantConfig configures the Qdrant connection.
type QdrantConfig struct {
	host   string
	port   int
	apiKey string
	useTLS bool
}

// NewQdrantConfig creates a QdrantConfig with defaults.
func NewQdrantConfig() QdrantConfig {
	return QdrantConfig{host: DefaultQdrantHost, port: DefaultQdrantPort}
}

// Host returns the Qdrant host.
func (q QdrantConfig) Host() string { return q.host }

// Port returns the Qdrant gRPC port.
func (q QdrantConfig) Port() int { return q.port }

// APIKey returns the API key (empty for local instances).
func (q QdrantConfig) APIKey() string { return q.apiKey }

// UseTLS reports whether the connection uses TLS.
func (q QdrantConfig) UseTLS() bool { return q.useTLS }

// AppConfig holds the main application configuration.
type AppConfig struct {
	host            string
	port            int
	environment     string
	configDir       string
	logLevel        string
	logFormat       LogFormat
	documentBackend Backend
	vectorBackend   Backend
	mongoURL        string
	mongoDatabase   string
	joinerDatabase  string
	sqlURL          string
	qdrant          QdrantConfig
	embedding       EmbeddingConfig
	chunkSize       int
	chunkOverlap    int
	corsOrigins     []string
	searchLimit     int
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:            DefaultHost,
		port:            DefaultPort,
		environment:     DefaultEnvironment,
		configDir:       "config",
		logLevel:        DefaultLogLevel,
		logFormat:       LogFormatPretty,
		documentBackend: BackendMongo,
		vectorBackend:   BackendQdrant,
		mongoURL:        DefaultMongoURL,
		mongoDatabase:   DefaultMongoDatabase,
		joinerDatabase:  DefaultJoinerDatabase,
		qdrant:          NewQdrantConfig(),
		embedding:       NewEmbeddingConfig(),
		chunkSize:       DefaultChunkSize,
		chunkOverlap:    DefaultChunkOverlap,
		searchLimit:     DefaultSearchLimit,
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// Environment returns the deployment environment name (dev, prod, ...),
// used to select the collections file config.<env>.yaml.
func (c AppConfig) Environment() string { return c.environment }

// ConfigDir returns the directory holding the collections files.
func (c AppConfig) ConfigDir() string { return c.configDir }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// DocumentBackend returns the document store backend.
func (c AppConfig) DocumentBackend() Backend { return c.documentBackend }

// VectorBackend returns the vector index backend.
func (c AppConfig) VectorBackend() Backend { return c.vectorBackend }

// MongoURL returns the MongoDB connection string.
func (c AppConfig) MongoURL() string { return c.mongoURL }

// MongoDatabase returns the primary document database name.
func (c AppConfig) MongoDatabase() string { return c.mongoDatabase }

// JoinerDatabase returns the database holding join-table collections.
func (c AppConfig) JoinerDatabase() string { return c.joinerDatabase }

// SQLURL returns the relational database URL for the account store
// (sqlite:///path or postgres://...). Empty disables the account store.
func (c AppConfig) SQLURL() string { return c.sqlURL }

// Qdrant returns the Qdrant connection config.
func (c AppConfig) Qdrant() QdrantConfig { return c.qdrant }

// Embedding returns the embedding endpoint config.
func (c AppConfig) Embedding() EmbeddingConfig { return c.embedding }

// ChunkSize returns the global chunk size in runes.
func (c AppConfig) ChunkSize() int { return c.chunkSize }

// ChunkOverlap returns the global chunk overlap in runes.
func (c AppConfig) ChunkOverlap() int { return c.chunkOverlap }

// CORSOrigins returns the allowed CORS origins.
func (c AppConfig) CORSOrigins() []string {
	out := make([]string, len(c.corsOrigins))
	copy(out, c.corsOrigins)
	return out
}

// SearchLimit returns the default semantic search result limit.
func (c AppConfig) SearchLimit() int { return c.searchLimit }

// Option is a functional option for AppConfig.
type Option func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) Option {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) Option {
	return func(c *AppConfig) { c.port = port }
}

// WithEnvironment sets the deployment environment name.
func WithEnvironment(env string) Option {
	return func(c *AppConfig) { c.environment = env }
}

// WithConfigDir sets the collections file directory.
func WithConfigDir(dir string) Option {
	return func(c *AppConfig) { c.configDir = dir }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) Option {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) Option {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithDocumentBackend sets the document store backend.
func WithDocumentBackend(b Backend) Option {
	return func(c *AppConfig) { c.documentBackend = b }
}

// WithVectorBackend sets the vector index backend.
func WithVectorBackend(b Backend) Option {
	return func(c *AppConfig) { c.vectorBackend = b }
}

// WithMongoURL sets the MongoDB connection string.
func WithMongoURL(url string) Option {
	return func(c *AppConfig) { c.mongoURL = url }
}

// WithMongoDatabase sets the primary document database name.
func WithMongoDatabase(name string) Option {
	return func(c *AppConfig) { c.mongoDatabase = name }
}

// WithJoinerDatabase sets the join-table database name.
func WithJoinerDatabase(name string) Option {
	return func(c *AppConfig) { c.joinerDatabase = name }
}

// WithSQLURL sets the relational database URL.
func WithSQLURL(url string) Option {
	return func(c *AppConfig) { c.sqlURL = url }
}

// WithQdrant sets the Qdrant connection config.
func WithQdrant(host string, port int, apiKey string, useTLS bool) Option {
	return func(c *AppConfig) {
		c.qdrant = QdrantConfig{host: host, port: port, apiKey: apiKey, useTLS: useTLS}
	}
}

// WithEmbedding sets the embedding endpoint config.
func WithEmbedding(e EmbeddingConfig) Option {
	return func(c *AppConfig) { c.embedding = e }
}

// WithEmbeddingEndpoint sets the embedding endpoint fields directly.
func WithEmbeddingEndpoint(baseURL, model, apiKey string, dimensions int) Option {
	return func(c *AppConfig) {
		c.embedding.baseURL = baseURL
		if model != "" {
			c.embedding.model = model
		}
		c.embedding.apiKey = apiKey
		if dimensions > 0 {
			c.embedding.dimensions = dimensions
		}
	}
}

// WithChunking sets the global chunk size and overlap.
func WithChunking(size, overlap int) Option {
	return func(c *AppConfig) {
		if size > 0 {
			c.chunkSize = size
		}
		if overlap >= 0 {
			c.chunkOverlap = overlap
		}
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) Option {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// WithSearchLimit sets the default search result limit.
func WithSearchLimit(n int) Option {
	return func(c *AppConfig) {
		if n > 0 {
			c.searchLimit = n
		}
	}
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...Option) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...Option) AppConfig {
	return NewAppConfig().Apply(opts...)
}
