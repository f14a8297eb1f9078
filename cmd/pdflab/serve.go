package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdflab/internal/adapters/driven/auth"
	"github.com/custodia-labs/pdflab/internal/adapters/driven/history"
	"github.com/custodia-labs/pdflab/internal/adapters/driven/memory"
	"github.com/custodia-labs/pdflab/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/pdflab/internal/adapters/driven/redis"
	"github.com/custodia-labs/pdflab/internal/adapters/driving/http"
	"github.com/custodia-labs/pdflab/internal/core/ports/driven"
	"github.com/custodia-labs/pdflab/internal/core/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workspace API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	log.Printf("pdflab %s starting", version)

	// Configuration from environment
	port := getEnvInt("PORT", 8080)
	sessionTTL := getEnvDuration("SESSION_TTL", services.DefaultSessionTTL)
	sweepInterval := getEnvDuration("SESSION_SWEEP_INTERVAL", services.DefaultSweepInterval)
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		jwtSecret = randomSecret()
		log.Println("Warning: JWT_SECRET not set, sessions will not survive a restart")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// ===== Collaborators =====
	backendClient := newBackend()
	if err := backendClient.HealthCheck(ctx); err != nil {
		log.Printf("Warning: backend health check failed: %v (uploads and queries may fail)", err)
	} else {
		log.Println("Document API and PDF worker reachable")
	}

	// ===== Workspace store (Redis, else PostgreSQL, else memory) =====
	store, pinger, closeStore, err := openWorkspaceStore(ctx, sessionTTL)
	if err != nil {
		return err
	}
	defer closeStore()

	// ===== Services =====
	sessions := services.NewSessionManager(services.SessionManagerConfig{
		Backend:    backendClient,
		Store:      store,
		Auth:       auth.NewAdapter(jwtSecret),
		NewHistory: history.Factory,
		BasePath:   flagBasePath,
		TTL:        sessionTTL,
		Logger:     slog.Default(),

		SweepInterval: sweepInterval,
	})

	cfg := http.DefaultConfig()
	cfg.Port = port
	cfg.Version = version
	cfg.BasePath = flagBasePath
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	cfg.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_MB", 64)) << 20
	cfg.Logger = slog.Default()

	server := http.NewServer(cfg, sessions, backendClient, pinger)

	err = server.Start(ctx)

	log.Println("Waiting for background summaries...")
	sessions.Close()
	return err
}

// openWorkspaceStore picks the snapshot store from the environment
func openWorkspaceStore(ctx context.Context, ttl time.Duration) (driven.WorkspaceStore, http.Pinger, func(), error) {
	if redisURL := getEnv("REDIS_URL", ""); redisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, err
		}
		log.Println("Using Redis workspace store")
		store := redisadapter.NewWorkspaceStore(client, ttl)
		return store, store, func() { client.Close() }, nil
	}

	if databaseURL := getEnv("DATABASE_URL", ""); databaseURL != "" {
		log.Println("Connecting to PostgreSQL...")
		dbConfig := postgres.Config{
			URL:             databaseURL,
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300)) * time.Second,
			ConnMaxIdleTime: time.Duration(getEnvInt("DB_CONN_MAX_IDLE_SEC", 60)) * time.Second,
		}
		db, err := postgres.Connect(ctx, dbConfig)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.InitSchema(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		log.Println("Using PostgreSQL workspace store")
		store := postgres.NewWorkspaceStore(db, ttl)
		go pruneExpired(ctx, store, time.Hour)
		return store, db, func() { db.Close() }, nil
	}

	log.Println("Using in-memory workspace store")
	return memory.NewWorkspaceStore(ttl), nil, func() {}, nil
}

// pruneExpired deletes expired PostgreSQL snapshots until ctx is done
func pruneExpired(ctx context.Context, store *postgres.WorkspaceStore, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpired(ctx)
			if err != nil {
				slog.Warn("prune expired workspaces", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("pruned expired workspaces", "count", n)
			}
		}
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
