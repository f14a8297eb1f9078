package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/custodia-labs/pdflab/internal/core/domain"
	"github.com/custodia-labs/pdflab/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports whether the collaborators answer
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DefaultMaxUploadBytes caps staged documents
const DefaultMaxUploadBytes = 64 << 20

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	basePath   string
	maxUpload  int64
	logger     *slog.Logger
	origins    []string

	// Services
	sessions driving.SessionService

	// Infrastructure
	backend HealthChecker
	store   Pinger // snapshot store health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	BasePath       string
	AllowedOrigins []string
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           8080,
		Version:        "dev",
		BasePath:       domain.DefaultBasePath,
		AllowedOrigins: []string{"*"},
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	sessions driving.SessionService,
	backend HealthChecker,
	store Pinger, // can be nil
) *Server {
	basePath := strings.TrimSuffix(cfg.BasePath, "/")
	if cfg.BasePath == "" {
		basePath = domain.DefaultBasePath
	}
	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:    http.NewServeMux(),
		version:   cfg.Version,
		basePath:  basePath,
		maxUpload: maxUpload,
		logger:    logger,
		origins:   cfg.AllowedOrigins,
		sessions:  sessions,
		backend:   backend,
		store:     store,
	}

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:     s.Handler(),
		ReadTimeout: 60 * time.Second,
		// Uploads block until the worker finishes indexing.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// Handler returns the router wrapped in recovery, logging and CORS
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = NewCORSMiddleware(s.origins).Handler(h)
	h = NewLoggingMiddleware(s.logger).Handler(h)
	h = NewRecoveryMiddleware(s.logger).Handler(h)
	return h
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	sessionMiddleware := NewSessionMiddleware(s.sessions, s.logger)

	// session wraps read-only handlers; command also persists the snapshot
	session := func(h http.HandlerFunc) http.Handler {
		return sessionMiddleware.Authenticate(h)
	}
	command := func(h http.HandlerFunc) http.Handler {
		return sessionMiddleware.Authenticate(sessionMiddleware.Persist(h))
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Session endpoints (public)
	s.router.HandleFunc("POST /api/v1/sessions", s.handleCreateSession)

	// Workspace endpoints
	s.router.Handle("GET /api/v1/workspace", session(s.handleGetWorkspace))
	s.router.Handle("POST /api/v1/workspace/file", command(s.handleStageFile))
	s.router.Handle("DELETE /api/v1/workspace/file", command(s.handleClearStaged))
	s.router.Handle("POST /api/v1/workspace/upload", command(s.handleUpload))
	s.router.Handle("POST /api/v1/workspace/upload-url", command(s.handleUploadURL))
	s.router.Handle("POST /api/v1/workspace/files/reload", command(s.handleReloadFiles))
	s.router.Handle("PUT /api/v1/workspace/selection", command(s.handleSelectFile))
	s.router.Handle("POST /api/v1/workspace/query", command(s.handleQuery))
	s.router.Handle("POST /api/v1/workspace/navigate", command(s.handleNavigate))
	s.router.Handle("POST /api/v1/workspace/commands", command(s.handleCommand))

	// View routes; a load or back/forward here re-derives the page
	home := s.basePath
	if home == "" {
		home = "/{$}"
	}
	s.router.Handle("GET "+home, session(s.handlePage))
	s.router.Handle("GET "+domain.PagePatterns.Path(s.basePath), session(s.handlePage))
}

// shutdownTimeout bounds how long in-flight requests get to finish
const shutdownTimeout = 30 * time.Second

// Start serves until ctx ends or the process is interrupted, then drains
// in-flight requests. A listener failure is returned instead of exiting.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.httpServer.Addr, "base_path", s.basePath)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
