package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Collections is the environment-selected file config supplying app
// identity, API settings, and per-entity collection names for the document
// store and the vector index.
type Collections struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	API struct {
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"api"`

	Databases struct {
		MongoDB struct {
			DatabaseName string            `yaml:"database_name"`
			Collections  map[string]string `yaml:"collections"`
		} `yaml:"mongodb"`

		Qdrant struct {
			Collections map[string]string `yaml:"collections"`
		} `yaml:"qdrant"`
	} `yaml:"databases"`
}

// DefaultCollections returns a Collections with built-in defaults, used
// when no collections file exists (entity collection names then fall back
// to the catalog defaults).
func DefaultCollections() Collections {
	var c Collections
	c.App.Name = "Unifly Backend"
	c.App.Version = "0.1.0"
	return c
}

// CollectionsPath returns the collections file path for an environment.
func CollectionsPath(dir, environment string) string {
	return filepath.Join(dir, fmt.Sprintf("config.%s.yaml", environment))
}

// LoadCollections reads the collections file for the configured
// environment. A missing file yields the defaults; a malformed file is an
// error.
func LoadCollections(cfg AppConfig) (Collections, error) {
	path := CollectionsPath(cfg.ConfigDir(), cfg.Environment())

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultCollections(), nil
	}
	if err != nil {
		return Collections{}, fmt.Errorf("read collections file %s: %w", path, err)
	}

	c := DefaultCollections()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Collections{}, fmt.Errorf("parse collections file %s: %w", path, err)
	}
	return c, nil
}

// MongoCollections returns the per-entity document collection names.
func (c Collections) MongoCollections() map[string]string {
	return c.Databases.MongoDB.Collections
}

// VectorCollections returns the per-entity vector collection names.
func (c Collections) VectorCollections() map[string]string {
	return c.Databases.Qdrant.Collections
}

// DatabaseName returns the document database name, or fallback when unset.
func (c Collections) DatabaseName(fallback string) string {
	if c.Databases.MongoDB.DatabaseName != "" {
		return c.Databases.MongoDB.DatabaseName
	}
	return fallback
}
