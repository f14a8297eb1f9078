package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/custodia-labs/pdflab/internal/core/domain"
	"github.com/custodia-labs/pdflab/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

const (
	// DefaultTTL matches the session token lifetime
	DefaultTTL = 24 * time.Hour

	cleanupInterval = 10 * time.Minute
)

// WorkspaceStore keeps snapshots in process memory. Used when neither Redis
// nor PostgreSQL is configured; contents are lost on restart.
type WorkspaceStore struct {
	cache *cache.Cache
}

// NewWorkspaceStore creates an in-memory store whose entries expire after ttl
func NewWorkspaceStore(ttl time.Duration) *WorkspaceStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &WorkspaceStore{cache: cache.New(ttl, cleanupInterval)}
}

// Save stores a copy of the snapshot
func (s *WorkspaceStore) Save(_ context.Context, snapshot *domain.WorkspaceSnapshot) error {
	if snapshot == nil || snapshot.SessionID == "" {
		return fmt.Errorf("%w: snapshot without session id", domain.ErrInvalidInput)
	}
	s.cache.SetDefault(snapshot.SessionID, copySnapshot(snapshot))
	return nil
}

// Get returns a copy of the stored snapshot
func (s *WorkspaceStore) Get(_ context.Context, sessionID string) (*domain.WorkspaceSnapshot, error) {
	v, ok := s.cache.Get(sessionID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copySnapshot(v.(*domain.WorkspaceSnapshot)), nil
}

func (s *WorkspaceStore) Delete(_ context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}

// Count returns the number of stored snapshots, expired ones included until cleanup
func (s *WorkspaceStore) Count() int {
	return s.cache.ItemCount()
}

func copySnapshot(in *domain.WorkspaceSnapshot) *domain.WorkspaceSnapshot {
	out := *in
	if in.Processing != nil {
		processing := *in.Processing
		processing.SectionPatterns = append([]string(nil), in.Processing.SectionPatterns...)
		out.Processing = &processing
	}
	return &out
}
