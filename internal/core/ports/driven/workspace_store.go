package driven

import (
	"context"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// WorkspaceStore persists workspace snapshots between restarts (Redis, PostgreSQL or memory)
type WorkspaceStore interface {
	// Save stores the snapshot, replacing any previous one for the session
	Save(ctx context.Context, snapshot *domain.WorkspaceSnapshot) error

	// Get retrieves a snapshot by session ID, ErrNotFound when absent
	Get(ctx context.Context, sessionID string) (*domain.WorkspaceSnapshot, error)

	// Delete removes a session's snapshot
	Delete(ctx context.Context, sessionID string) error
}
