package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/custodia-labs/pdflab/internal/core/domain"
	"github.com/custodia-labs/pdflab/internal/core/ports/driven"
	"github.com/custodia-labs/pdflab/internal/core/ports/driving"
)

// Ensure SessionManager implements SessionService
var _ driving.SessionService = (*SessionManager)(nil)

const (
	// DefaultSessionTTL is how long a session token stays valid
	DefaultSessionTTL = 24 * time.Hour

	// DefaultSweepInterval is how often idle workspaces are evicted
	DefaultSweepInterval = 10 * time.Minute
)

// SessionManager keeps one live workspace per session and persists the
// durable part of each after every command. A live workspace unused for
// the session TTL is evicted; its snapshot stays in the store.
type SessionManager struct {
	backend    driven.Backend
	store      driven.WorkspaceStore
	auth       driven.AuthAdapter
	newHistory func(initialPath string) driven.History
	basePath   string
	ttl        time.Duration
	logger     *slog.Logger

	live *cache.Cache
}

// SessionManagerConfig holds dependencies for SessionManager.
type SessionManagerConfig struct {
	Backend    driven.Backend
	Store      driven.WorkspaceStore
	Auth       driven.AuthAdapter
	NewHistory func(initialPath string) driven.History
	BasePath   string
	TTL        time.Duration
	Logger     *slog.Logger

	// SweepInterval is how often expired workspaces are evicted
	SweepInterval time.Duration
}

// NewSessionManager creates a new SessionManager
func NewSessionManager(cfg SessionManagerConfig) *SessionManager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = domain.DefaultBasePath
	}
	sweep := cfg.SweepInterval
	if sweep <= 0 {
		sweep = DefaultSweepInterval
	}

	m := &SessionManager{
		backend:    cfg.Backend,
		store:      cfg.Store,
		auth:       cfg.Auth,
		newHistory: cfg.NewHistory,
		basePath:   basePath,
		ttl:        ttl,
		logger:     logger,
		live:       cache.New(ttl, sweep),
	}
	m.live.OnEvicted(func(sessionID string, v interface{}) {
		v.(*Workspace).Close()
		m.logger.Debug("workspace evicted", "session_id", sessionID)
	})
	return m
}

// Create starts a new session, loads its file list and returns its token
func (m *SessionManager) Create(ctx context.Context) (*domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        generateID(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	token, err := m.auth.GenerateToken(&domain.TokenClaims{
		SessionID: session.ID,
		IssuedAt:  now.Unix(),
		ExpiresAt: session.ExpiresAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	session.Token = token

	ws := m.newWorkspace(session.ID)
	_ = ws.ReloadFiles(ctx)
	m.live.SetDefault(session.ID, ws)

	if err := m.store.Save(ctx, ws.Snapshot()); err != nil {
		return nil, fmt.Errorf("save workspace: %w", err)
	}

	m.logger.Info("session created", "session_id", session.ID)
	return session, nil
}

// Resolve maps a token to its workspace. A workspace that is not live is
// rebuilt from its stored snapshot and its file list reloaded, which
// re-validates the restored selection.
func (m *SessionManager) Resolve(ctx context.Context, token string) (driving.WorkspaceService, string, error) {
	claims, err := m.auth.ParseToken(token)
	if err != nil {
		return nil, "", err
	}
	if claims.SessionID == "" {
		return nil, "", domain.ErrTokenInvalid
	}

	if ws, ok := m.touch(claims.SessionID); ok {
		return ws, claims.SessionID, nil
	}

	snapshot, err := m.store.Get(ctx, claims.SessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, "", domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("load workspace: %w", err)
	}

	ws := m.newWorkspace(claims.SessionID)
	ws.Restore(snapshot)
	_ = ws.ReloadFiles(ctx)

	if err := m.live.Add(claims.SessionID, ws, cache.DefaultExpiration); err != nil {
		// Another request restored it first.
		if live, ok := m.touch(claims.SessionID); ok {
			ws.Close()
			return live, claims.SessionID, nil
		}
		m.live.SetDefault(claims.SessionID, ws)
	}

	m.logger.Info("session restored", "session_id", claims.SessionID)
	return ws, claims.SessionID, nil
}

// Persist stores the session's snapshot
func (m *SessionManager) Persist(ctx context.Context, sessionID string) error {
	v, ok := m.live.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	ws := v.(*Workspace)

	if err := m.store.Save(ctx, ws.Snapshot()); err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}
	return nil
}

// Close stops background work in every live workspace and waits for it
func (m *SessionManager) Close() {
	m.live.DeleteExpired()
	for _, item := range m.live.Items() {
		item.Object.(*Workspace).Close()
	}
}

// Sweep evicts workspaces idle for longer than the session TTL. The cache
// also runs it every SweepInterval.
func (m *SessionManager) Sweep() {
	m.live.DeleteExpired()
}

// Live returns the number of workspaces held in memory
func (m *SessionManager) Live() int {
	return m.live.ItemCount()
}

// touch returns a live workspace and restarts its idle timer
func (m *SessionManager) touch(sessionID string) (*Workspace, bool) {
	v, ok := m.live.Get(sessionID)
	if !ok {
		return nil, false
	}
	ws := v.(*Workspace)
	m.live.SetDefault(sessionID, ws)
	return ws, true
}

func (m *SessionManager) newWorkspace(sessionID string) *Workspace {
	return NewWorkspace(WorkspaceConfig{
		Backend:   m.backend,
		History:   m.newHistory(m.basePath),
		BasePath:  m.basePath,
		SessionID: sessionID,
		Logger:    m.logger,
	})
}

func generateID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
