// Package unifly provides a university application planning backend: a
// document catalog backed by a document store, kept in sync with a vector
// search index through a join table.
//
// Basic usage:
//
//	client, err := unifly.New(
//	    unifly.WithConfig(cfg),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Insert a record; searchable entities are chunked and indexed.
//	result, err := client.Catalog().Create(ctx, "universities", record)
//
//	// Semantic search over an entity's indexed documents.
//	hits, err := client.Catalog().Search(ctx, "universities", "marine biology", 5)
package unifly

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/unifly-app/unifly/application/service"
	"github.com/unifly-app/unifly/domain/catalog"
	"github.com/unifly-app/unifly/domain/document"
	"github.com/unifly-app/unifly/domain/search"
	"github.com/unifly-app/unifly/infrastructure/chunking"
	"github.com/unifly-app/unifly/infrastructure/mongodb"
	"github.com/unifly-app/unifly/infrastructure/persistence"
	"github.com/unifly-app/unifly/infrastructure/provider"
	"github.com/unifly-app/unifly/infrastructure/qdrant"
	infrasearch "github.com/unifly-app/unifly/infrastructure/search"
	"github.com/unifly-app/unifly/internal/config"
	"github.com/unifly-app/unifly/internal/database"
	"github.com/unifly-app/unifly/internal/log"
)

// ErrNoEmbedder is returned when the configured vector backend requires an
// embedding provider but none is configured.
var ErrNoEmbedder = errors.New("vector backend requires an embedding provider")

// Client is the main entry point for the unifly library. It wires the
// document store, the vector index, the join table, and the account store
// according to the configured backends.
type Client struct {
	catalog  *service.Catalog
	accounts *service.Accounts

	documents document.Store
	joins     search.JoinStore
	index     search.Index

	mongo       *mongodb.Manager
	qdrantIndex *qdrant.Index
	db          database.Database
	hasDB       bool

	cfg         config.AppConfig
	collections config.Collections
	logger      *slog.Logger
	closed      atomic.Bool
	mu          sync.Mutex
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cc := newClientConfig()
	for _, opt := range opts {
		opt(cc)
	}

	cfg := cc.appConfig

	logger := cc.logger
	if logger == nil {
		logger = log.NewLogger(cfg)
	}

	collections := cc.collections
	if collections == nil {
		loaded, err := config.LoadCollections(cfg)
		if err != nil {
			return nil, fmt.Errorf("load collections: %w", err)
		}
		collections = &loaded
	}
	if len(cfg.CORSOrigins()) == 0 && len(collections.API.CORSOrigins) > 0 {
		cfg = cfg.Apply(config.WithCORSOrigins(collections.API.CORSOrigins))
	}

	entities := catalog.Build(collections.MongoCollections(), collections.VectorCollections())

	splitter, err := chunking.NewSplitter(cfg.ChunkSize(), cfg.ChunkOverlap())
	if err != nil {
		return nil, fmt.Errorf("create splitter: %w", err)
	}

	embedder := cc.embedder
	if embedder == nil && cfg.Embedding().IsConfigured() {
		emb := cfg.Embedding()
		embedder = provider.NewOpenAIEmbedder(provider.OpenAIConfig{
			APIKey:     emb.APIKey(),
			BaseURL:    emb.BaseURL(),
			Model:      emb.Model(),
			Dimensions: emb.Dimensions(),
			Timeout:    emb.Timeout(),
			MaxRetries: emb.MaxRetries(),
		})
	}

	ctx := context.Background()
	client := &Client{
		cfg:         cfg,
		collections: *collections,
		logger:      logger,
	}

	// SQL database backs the account store, and the vector index when the
	// sqlite backend is selected. Without a configured URL an in-memory
	// database keeps accounts available.
	sqlURL := cfg.SQLURL()
	if sqlURL == "" {
		sqlURL = "sqlite:///:memory:"
	}
	db, err := database.NewDatabase(ctx, sqlURL)
	if err != nil {
		return nil, fmt.Errorf("open sql database: %w", err)
	}
	client.db = db
	client.hasDB = true

	index, err := client.buildIndex(cfg, db, embedder, logger)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	documents, joins, err := client.buildDocumentStores(cfg, collections, logger)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	client.index = index
	client.documents = documents
	client.joins = joins

	accountStore, err := persistence.NewAccountStore(db, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create account store: %w", err), db.Close())
	}

	synchronizer := service.NewSynchronizer(index, joins, splitter, logger)
	client.catalog = service.NewCatalog(entities, documents, synchronizer, cfg.SearchLimit(), logger)
	client.accounts = service.NewAccounts(accountStore, logger)

	logger.Info("unifly client ready",
		slog.String("document_backend", string(cfg.DocumentBackend())),
		slog.String("vector_backend", string(cfg.VectorBackend())))

	return client, nil
}

func (c *Client) buildIndex(cfg config.AppConfig, db database.Database, embedder search.Embedder, logger *slog.Logger) (search.Index, error) {
	switch cfg.VectorBackend() {
	case config.BackendQdrant:
		if embedder == nil {
			return nil, ErrNoEmbedder
		}
		q := cfg.Qdrant()
		idx, err := qdrant.NewIndex(qdrant.Config{
			Host:   q.Host(),
			Port:   q.Port(),
			APIKey: q.APIKey(),
			UseTLS: q.UseTLS(),
		}, embedder, logger)
		if err != nil {
			return nil, fmt.Errorf("create qdrant index: %w", err)
		}
		c.qdrantIndex = idx
		return idx, nil
	case config.BackendSQLite:
		if embedder == nil {
			return nil, ErrNoEmbedder
		}
		return infrasearch.NewSQLIndex(db, embedder, logger), nil
	case config.BackendMemory:
		return infrasearch.NewMemoryIndex(), nil
	default:
		return nil, fmt.Errorf("unsupported vector backend: %s", cfg.VectorBackend())
	}
}

func (c *Client) buildDocumentStores(cfg config.AppConfig, collections *config.Collections, logger *slog.Logger) (document.Store, search.JoinStore, error) {
	switch cfg.DocumentBackend() {
	case config.BackendMongo:
		manager := mongodb.NewManager(cfg.MongoURL(), logger)
		c.mongo = manager
		dbName := collections.DatabaseName(cfg.MongoDatabase())
		return mongodb.NewDocumentStore(manager, dbName),
			mongodb.NewJoinStore(manager, cfg.JoinerDatabase()), nil
	case config.BackendMemory:
		return persistence.NewMemoryDocumentStore(), persistence.NewMemoryJoinStore(), nil
	default:
		return nil, nil, fmt.Errorf("unsupported document backend: %s", cfg.DocumentBackend())
	}
}

// Catalog returns the entity catalog service.
func (c *Client) Catalog() *service.Catalog {
	return c.catalog
}

// Accounts returns the account service.
func (c *Client) Accounts() *service.Accounts {
	return c.accounts
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Config returns the resolved application configuration.
func (c *Client) Config() config.AppConfig {
	return c.cfg
}

// Collections returns the environment-selected collections configuration.
func (c *Client) Collections() config.Collections {
	return c.collections
}

// Close releases all resources.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return service.ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.qdrantIndex != nil {
		if err := c.qdrantIndex.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close qdrant index: %w", err))
		}
	}

	if c.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.mongo.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close mongodb: %w", err))
		}
	}

	if c.hasDB {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sql database: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	c.logger.Info("unifly client closed")
	return nil
}
