package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/pdflab/internal/core/domain"
	"github.com/custodia-labs/pdflab/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// DefaultTTL matches the session token lifetime
const DefaultTTL = 24 * time.Hour

// WorkspaceStore implements driven.WorkspaceStore using PostgreSQL.
// Rows past expires_at are invisible to Get and removed by DeleteExpired.
type WorkspaceStore struct {
	db  *DB
	ttl time.Duration
}

// NewWorkspaceStore creates a new WorkspaceStore
func NewWorkspaceStore(db *DB, ttl time.Duration) *WorkspaceStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &WorkspaceStore{db: db, ttl: ttl}
}

// Save upserts a snapshot and extends its expiry
func (s *WorkspaceStore) Save(ctx context.Context, snapshot *domain.WorkspaceSnapshot) error {
	if snapshot == nil || snapshot.SessionID == "" {
		return fmt.Errorf("%w: snapshot without session id", domain.ErrInvalidInput)
	}

	var processing []byte
	if snapshot.Processing != nil {
		var err error
		processing, err = json.Marshal(snapshot.Processing)
		if err != nil {
			return fmt.Errorf("failed to marshal processing outcome: %w", err)
		}
	}

	updatedAt := snapshot.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query := `
		INSERT INTO workspaces (session_id, selected, last_uploaded, processing, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id) DO UPDATE SET
			selected = EXCLUDED.selected,
			last_uploaded = EXCLUDED.last_uploaded,
			processing = EXCLUDED.processing,
			updated_at = EXCLUDED.updated_at,
			expires_at = EXCLUDED.expires_at
	`

	_, err := s.db.ExecContext(ctx, query,
		snapshot.SessionID,
		snapshot.Selected,
		snapshot.LastUploaded,
		nullJSON(processing),
		updatedAt,
		updatedAt.Add(s.ttl),
	)
	if err != nil {
		return fmt.Errorf("failed to save workspace: %w", err)
	}
	return nil
}

// Get retrieves an unexpired snapshot by session ID
func (s *WorkspaceStore) Get(ctx context.Context, sessionID string) (*domain.WorkspaceSnapshot, error) {
	query := `
		SELECT session_id, selected, last_uploaded, processing, updated_at
		FROM workspaces
		WHERE session_id = $1 AND expires_at > NOW()
	`

	var (
		snapshot   domain.WorkspaceSnapshot
		processing []byte
	)
	err := s.db.QueryRowContext(ctx, query, sessionID).Scan(
		&snapshot.SessionID,
		&snapshot.Selected,
		&snapshot.LastUploaded,
		&processing,
		&snapshot.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if len(processing) > 0 {
		var outcome domain.ProcessingOutcome
		if err := json.Unmarshal(processing, &outcome); err != nil {
			return nil, fmt.Errorf("failed to unmarshal processing outcome: %w", err)
		}
		snapshot.Processing = &outcome
	}
	return &snapshot, nil
}

// Delete removes a snapshot
func (s *WorkspaceStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM workspaces WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	return nil
}

// DeleteExpired removes expired snapshots and returns how many were removed
func (s *WorkspaceStore) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM workspaces WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired workspaces: %w", err)
	}
	return result.RowsAffected()
}

func nullJSON(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}
