package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// ReloadFiles refreshes the available documents. Any failure empties the
// registry: a selection that cannot be confirmed is never shown.
//
// Concurrent reloads of the same file-list generation share one collaborator
// call. Indexing a document starts a new generation, so a listing requested
// before the index finished is neither joined nor applied afterwards.
func (w *Workspace) ReloadFiles(ctx context.Context) error {
	w.mu.Lock()
	gen := w.filesGen
	w.mu.Unlock()

	// The shared call must not die with whichever caller happened to start it.
	shared := context.WithoutCancel(ctx)
	v, err, joined := w.reloads.Do(strconv.FormatUint(gen, 10), func() (interface{}, error) {
		return w.backend.ListFiles(shared)
	})

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.filesGen {
		w.logger.Debug("dropping file list from before the last index", "generation", gen)
		return domain.ErrStale
	}
	if err != nil {
		w.files = w.files.Clear()
		w.logger.Warn("file list unavailable, clearing registry", "error", err)
		return fmt.Errorf("list files: %w", err)
	}

	files, _ := v.([]string)
	w.files = w.files.Apply(files)
	w.logger.Debug("file list reloaded",
		"files", len(w.files.Available),
		"selected", w.files.Selected,
		"shared", joined,
	)
	return nil
}

// SelectFile makes a listed document the active one
func (w *Workspace) SelectFile(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files.Contains(name) {
		return fmt.Errorf("%w: %q is not an available file", domain.ErrNotFound, name)
	}
	w.files = w.files.Select(name)
	return nil
}
