// Package mongodb implements the document store and join store on MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Manager owns a lazily-connected MongoDB client shared by the stores built
// on it. The first call that needs the client connects and pings; a failed
// ping resets the client so the next call retries from scratch.
type Manager struct {
	url    string
	logger *slog.Logger

	mu     sync.Mutex
	client *mongo.Client
}

// NewManager creates a Manager for the given connection URL. No connection
// is made until a store first uses the client.
func NewManager(url string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{url: url, logger: logger}
}

// Client returns the shared client, connecting on first use.
func (m *Manager) Client(ctx context.Context) (*mongo.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.url))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	m.logger.Info("connected to mongodb")
	m.client = client
	return m.client, nil
}

// Database returns a handle to the named database, connecting on first use.
func (m *Manager) Database(ctx context.Context, name string) (*mongo.Database, error) {
	client, err := m.Client(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(name), nil
}

// Close disconnects the client if connected.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	return err
}
