package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/unifly-app/unifly"
	"github.com/unifly-app/unifly/infrastructure/api"
	"github.com/unifly-app/unifly/internal/config"
	"github.com/unifly-app/unifly/internal/log"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables (all prefixed UNIFLY_):
  UNIFLY_HOST                  Server host to bind to (default: 0.0.0.0)
  UNIFLY_PORT                  Server port to listen on (default: 8000)
  UNIFLY_ENVIRONMENT           Environment name selecting config.{env}.yaml (default: dev)
  UNIFLY_CONFIG_DIR            Directory holding the collections config files (default: config)
  UNIFLY_LOG_LEVEL             Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  UNIFLY_LOG_FORMAT            Log format: pretty, json (default: pretty)

  UNIFLY_DOCUMENT_BACKEND      Document store: mongo, memory (default: mongo)
  UNIFLY_VECTOR_BACKEND        Vector index: qdrant, sqlite, memory (default: qdrant)
  UNIFLY_MONGO_URL             MongoDB connection URL
  UNIFLY_MONGO_DATABASE        MongoDB database name (default: unifly)
  UNIFLY_JOINER_DATABASE       Join table database name (default: joiner)
  UNIFLY_SQL_URL               SQL database URL for accounts and the sqlite vector index

  UNIFLY_QDRANT_HOST           Qdrant host (default: localhost)
  UNIFLY_QDRANT_PORT           Qdrant gRPC port (default: 6334)
  UNIFLY_QDRANT_API_KEY        Qdrant API key
  UNIFLY_QDRANT_USE_TLS        Use TLS for Qdrant (default: false)

  UNIFLY_EMBEDDING_BASE_URL    Embedding API base URL
  UNIFLY_EMBEDDING_MODEL       Embedding model (default: text-embedding-3-small)
  UNIFLY_EMBEDDING_API_KEY     Embedding API key
  UNIFLY_EMBEDDING_DIMENSIONS  Embedding vector size (default: 1536)

  UNIFLY_CHUNK_SIZE            Chunk size in characters (default: 1000)
  UNIFLY_CHUNK_OVERLAP         Chunk overlap in characters (default: 100)
  UNIFLY_CORS_ORIGINS          Comma-separated allowed CORS origins`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8000)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// Flags take precedence over env vars.
	cfg = applyServeOverrides(cfg, host, port)

	logger := log.NewLogger(cfg)
	logger.Info("starting unifly",
		slog.String("version", version),
		slog.String("environment", cfg.Environment()),
		slog.String("document_backend", string(cfg.DocumentBackend())),
		slog.String("vector_backend", string(cfg.VectorBackend())))

	client, err := unifly.New(
		unifly.WithConfig(cfg),
		unifly.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create unifly client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close unifly client", slog.Any("error", err))
		}
	}()

	apiServer := api.NewAPIServer(client)
	apiServer.MountRoutes()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apiServer.ListenAndServe(cfg.Addr())
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return apiServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.Option

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
