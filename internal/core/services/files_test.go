package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

func TestReloadFiles(t *testing.T) {
	tests := []struct {
		name         string
		previous     string
		files        []string
		wantSelected string
	}{
		{name: "empty list selects nothing", files: nil, wantSelected: ""},
		{name: "no previous selects first", files: []string{"a.pdf", "b.pdf"}, wantSelected: "a.pdf"},
		{name: "previous still listed survives", previous: "b.pdf", files: []string{"a.pdf", "b.pdf"}, wantSelected: "b.pdf"},
		{name: "previous gone falls back to first", previous: "x.pdf", files: []string{"a.pdf", "b.pdf"}, wantSelected: "a.pdf"},
		{name: "previous gone with empty list", previous: "x.pdf", files: nil, wantSelected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, backend, _ := newTestWorkspace(t, tt.files...)
			if tt.previous != "" {
				ws.Restore(&domain.WorkspaceSnapshot{Selected: tt.previous})
			}

			require.NoError(t, ws.ReloadFiles(context.Background()))

			view := ws.View()
			assert.Equal(t, tt.wantSelected, view.Files.Selected)
			assert.Len(t, view.Files.Available, len(tt.files))
			assert.Equal(t, 1, backend.ListCalls())
		})
	}
}

func TestReloadFiles_FailureClearsRegistry(t *testing.T) {
	ctx := context.Background()
	ws, backend, _ := newTestWorkspace(t, "a.pdf", "b.pdf")
	withSelection(t, ws)

	backend.ListErr = errors.New("connection refused")
	err := ws.ReloadFiles(ctx)
	require.Error(t, err)

	view := ws.View()
	assert.Empty(t, view.Files.Available)
	assert.Empty(t, view.Files.Selected)
	for _, ch := range domain.Channels() {
		assert.Equal(t, domain.InitialStatus(ch), view.Status(ch))
	}
}

func TestReloadFiles_SameGenerationCallsShareOneRequest(t *testing.T) {
	ws, backend, _ := newTestWorkspace(t)

	release := make(chan struct{})
	backend.ListFilesFn = func(ctx context.Context) ([]string, error) {
		<-release
		return []string{"a.pdf"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, ws.ReloadFiles(context.Background()))
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, 1, backend.ListCalls())
	assert.Equal(t, "a.pdf", ws.View().Files.Selected)
}

func TestReloadFiles_SharedCallOutlivesStartingCaller(t *testing.T) {
	ws, backend, _ := newTestWorkspace(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	backend.ListFilesFn = func(ctx context.Context) ([]string, error) {
		once.Do(func() { close(entered) })
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []string{"a.pdf"}, nil
	}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() { firstErr <- ws.ReloadFiles(first) }()
	<-entered

	secondErr := make(chan error, 1)
	go func() { secondErr <- ws.ReloadFiles(context.Background()) }()
	time.Sleep(50 * time.Millisecond)

	cancel()
	close(release)

	require.NoError(t, <-firstErr)
	require.NoError(t, <-secondErr)
	assert.Equal(t, 1, backend.ListCalls())
	assert.Equal(t, "a.pdf", ws.View().Files.Selected)
}

func TestReloadFiles_CancelledCallerStillReloads(t *testing.T) {
	ws, backend, _ := newTestWorkspace(t)
	backend.ListFilesFn = func(ctx context.Context) ([]string, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []string{"a.pdf"}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, ws.ReloadFiles(ctx))
	assert.Equal(t, []string{"a.pdf"}, ws.View().Files.Available)
}

func TestSelectFile(t *testing.T) {
	ws, _, _ := newTestWorkspace(t, "a.pdf", "b.pdf")
	withSelection(t, ws)

	require.NoError(t, ws.SelectFile("b.pdf"))
	assert.Equal(t, "b.pdf", ws.View().Files.Selected)

	err := ws.SelectFile("missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "b.pdf", ws.View().Files.Selected)
}
