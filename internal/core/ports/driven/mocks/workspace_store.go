package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// MockWorkspaceStore is a mock implementation of WorkspaceStore for testing
type MockWorkspaceStore struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.WorkspaceSnapshot
	saves     int
	SaveErr   error
}

// NewMockWorkspaceStore creates a new MockWorkspaceStore
func NewMockWorkspaceStore() *MockWorkspaceStore {
	return &MockWorkspaceStore{
		snapshots: make(map[string]*domain.WorkspaceSnapshot),
	}
}

func (m *MockWorkspaceStore) Save(ctx context.Context, snapshot *domain.WorkspaceSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	copied := *snapshot
	m.snapshots[snapshot.SessionID] = &copied
	m.saves++
	return nil
}

func (m *MockWorkspaceStore) Get(ctx context.Context, sessionID string) (*domain.WorkspaceSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot, ok := m.snapshots[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *snapshot
	return &copied, nil
}

func (m *MockWorkspaceStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, sessionID)
	return nil
}

// Saves returns how many snapshots were written
func (m *MockWorkspaceStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
