package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/pdflab/internal/core/domain"
	"github.com/custodia-labs/pdflab/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.WorkspaceStore = (*WorkspaceStore)(nil)

// Key prefix for Redis
const workspacePrefix = "pdflab:workspace:"

// DefaultTTL matches the session token lifetime
const DefaultTTL = 24 * time.Hour

// WorkspaceStore implements driven.WorkspaceStore using Redis.
// Snapshots use Redis TTL for automatic expiration; every save extends it.
type WorkspaceStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWorkspaceStore creates a new Redis-backed WorkspaceStore
func NewWorkspaceStore(client *redis.Client, ttl time.Duration) *WorkspaceStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &WorkspaceStore{client: client, ttl: ttl}
}

// Save stores a snapshot under its session ID
func (s *WorkspaceStore) Save(ctx context.Context, snapshot *domain.WorkspaceSnapshot) error {
	if snapshot == nil || snapshot.SessionID == "" {
		return fmt.Errorf("%w: snapshot without session id", domain.ErrInvalidInput)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal workspace: %w", err)
	}

	if err := s.client.Set(ctx, workspacePrefix+snapshot.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save workspace: %w", err)
	}
	return nil
}

// Get retrieves a snapshot by session ID
func (s *WorkspaceStore) Get(ctx context.Context, sessionID string) (*domain.WorkspaceSnapshot, error) {
	data, err := s.client.Get(ctx, workspacePrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	var snapshot domain.WorkspaceSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workspace: %w", err)
	}
	return &snapshot, nil
}

// Delete removes a snapshot. Deleting a missing one is not an error.
func (s *WorkspaceStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, workspacePrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	return nil
}

// Ping checks connectivity
func (s *WorkspaceStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
