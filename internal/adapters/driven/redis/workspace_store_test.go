package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// setupTestWorkspaceStore creates a test Redis client and WorkspaceStore
func setupTestWorkspaceStore(t *testing.T) (*WorkspaceStore, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewWorkspaceStore(client, time.Hour)

	return store, mr, func() {
		client.Close()
		mr.Close()
	}
}

// createTestSnapshot creates a snapshot with a processing outcome
func createTestSnapshot(sessionID string) *domain.WorkspaceSnapshot {
	return &domain.WorkspaceSnapshot{
		SessionID:    sessionID,
		Selected:     "report.pdf",
		LastUploaded: "report.pdf",
		Processing: &domain.ProcessingOutcome{
			Filename:        "report.pdf",
			Pages:           domain.KnownCount(12),
			ChunksIndexed:   domain.KnownCount(40),
			CaptionsIndexed: domain.UnknownCount(),
			LanguageCode:    "en",
			LanguageName:    "English",
			SectionPatterns: []string{"^Chapter"},
		},
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestNewWorkspaceStore_DefaultTTL(t *testing.T) {
	store := NewWorkspaceStore(nil, 0)
	if store.ttl != DefaultTTL {
		t.Errorf("expected default ttl %v, got %v", DefaultTTL, store.ttl)
	}
}

func TestWorkspaceStore_SaveAndGet(t *testing.T) {
	store, _, cleanup := setupTestWorkspaceStore(t)
	defer cleanup()

	ctx := context.Background()
	snapshot := createTestSnapshot("sess-1")

	if err := store.Save(ctx, snapshot); err != nil {
		t.Fatalf("unexpected error saving workspace: %v", err)
	}

	retrieved, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("failed to retrieve saved workspace: %v", err)
	}

	if retrieved.Selected != "report.pdf" {
		t.Errorf("expected selected report.pdf, got %s", retrieved.Selected)
	}
	if retrieved.Processing == nil {
		t.Fatal("expected processing outcome")
	}
	if got := retrieved.Processing.Summary(); got != "Pages: 12 | Chunks: 40 | Captions: ?" {
		t.Errorf("unexpected processing summary %q", got)
	}
	if !retrieved.UpdatedAt.Equal(snapshot.UpdatedAt) {
		t.Errorf("expected updated_at %v, got %v", snapshot.UpdatedAt, retrieved.UpdatedAt)
	}
}

func TestWorkspaceStore_SaveSetsTTL(t *testing.T) {
	store, mr, cleanup := setupTestWorkspaceStore(t)
	defer cleanup()

	if err := store.Save(context.Background(), createTestSnapshot("sess-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ttl := mr.TTL(workspacePrefix + "sess-1"); ttl != time.Hour {
		t.Errorf("expected ttl 1h, got %v", ttl)
	}

	mr.FastForward(2 * time.Hour)

	_, err := store.Get(context.Background(), "sess-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestWorkspaceStore_SaveRequiresSessionID(t *testing.T) {
	store, _, cleanup := setupTestWorkspaceStore(t)
	defer cleanup()

	err := store.Save(context.Background(), &domain.WorkspaceSnapshot{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWorkspaceStore_GetMissing(t *testing.T) {
	store, _, cleanup := setupTestWorkspaceStore(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWorkspaceStore_GetCorrupt(t *testing.T) {
	store, mr, cleanup := setupTestWorkspaceStore(t)
	defer cleanup()

	_ = mr.Set(workspacePrefix+"sess-1", "{broken")

	_, err := store.Get(context.Background(), "sess-1")
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected unmarshal error, got %v", err)
	}
}

func TestWorkspaceStore_Delete(t *testing.T) {
	store, _, cleanup := setupTestWorkspaceStore(t)
	defer cleanup()

	ctx := context.Background()
	_ = store.Save(ctx, createTestSnapshot("sess-1"))

	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("unexpected error deleting: %v", err)
	}
	if _, err := store.Get(ctx, "sess-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op
	if err := store.Delete(ctx, "sess-1"); err != nil {
		t.Errorf("unexpected error deleting twice: %v", err)
	}
}

func TestWorkspaceStore_Ping(t *testing.T) {
	store, _, cleanup := setupTestWorkspaceStore(t)
	defer cleanup()

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("unexpected ping error: %v", err)
	}
}
