package unifly

import (
	"log/slog"

	"github.com/unifly-app/unifly/domain/search"
	"github.com/unifly-app/unifly/internal/config"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	appConfig   config.AppConfig
	collections *config.Collections
	embedder    search.Embedder
	logger      *slog.Logger
}

func newClientConfig() *clientConfig {
	return &clientConfig{appConfig: config.NewAppConfig()}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithConfig sets the full application configuration.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.appConfig = cfg
	}
}

// WithConfigOptions applies configuration options on top of the current
// application configuration.
func WithConfigOptions(opts ...config.Option) Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.Apply(opts...)
	}
}

// WithCollections sets the collections configuration, bypassing the
// environment-selected collections file.
func WithCollections(collections config.Collections) Option {
	return func(c *clientConfig) {
		c.collections = &collections
	}
}

// WithEmbedder sets a custom embedding provider, overriding the one derived
// from the embedding configuration.
func WithEmbedder(e search.Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithMemoryBackends selects the in-process document store and vector
// index. Intended for tests and local development.
func WithMemoryBackends() Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.Apply(
			config.WithDocumentBackend(config.BackendMemory),
			config.WithVectorBackend(config.BackendMemory),
		)
	}
}
