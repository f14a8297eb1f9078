package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/pdflab/internal/core/domain"
	"github.com/custodia-labs/pdflab/internal/core/ports/driven"
	"github.com/custodia-labs/pdflab/internal/core/ports/driving"
)

// Ensure Workspace implements WorkspaceService
var _ driving.WorkspaceService = (*Workspace)(nil)

// Workspace is the application store for one user. Every state transition
// runs under mu; collaborator calls never do, so a slow backend only delays
// the operation that is waiting on it.
type Workspace struct {
	backend   driven.Backend
	router    *Router
	logger    *slog.Logger
	sessionID string

	mu           sync.Mutex
	statuses     *StatusTracker
	files        domain.FileRegistry
	staged       *domain.StagedFile
	lastUploaded string
	processing   *domain.ProcessingOutcome
	query        string
	results      []domain.ResultItem
	summary      string

	// Latest issued request per flow. Responses tagged with an older
	// sequence are dropped.
	uploadSeq uint64
	querySeq  uint64

	// filesGen advances whenever indexing changes what the backend lists
	filesGen uint64
	reloads  singleflight.Group

	// lastSummary is closed when the latest query's summary settles.
	// tasks only tracks summaries for Close; no Add happens once closed.
	lastSummary chan struct{}
	closed      bool
	tasks       sync.WaitGroup
}

// WorkspaceConfig holds dependencies for Workspace.
type WorkspaceConfig struct {
	Backend   driven.Backend
	History   driven.History
	BasePath  string
	SessionID string
	Logger    *slog.Logger
}

// NewWorkspace creates a workspace whose page is derived from the history's current path.
func NewWorkspace(cfg WorkspaceConfig) *Workspace {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SessionID != "" {
		logger = logger.With("session_id", cfg.SessionID)
	}

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = domain.DefaultBasePath
	}

	return &Workspace{
		backend:   cfg.Backend,
		router:    NewRouter(basePath, cfg.History),
		logger:    logger,
		sessionID: cfg.SessionID,
		statuses:  NewStatusTracker(),
		files:     domain.FileRegistry{Available: []string{}},
	}
}

// SetStatus replaces a channel's status
func (w *Workspace) SetStatus(status domain.Status, ch domain.Channel) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.statuses.SetStatus(status, ch)
}

// Dispatch runs a command against the matching operation
func (w *Workspace) Dispatch(ctx context.Context, cmd domain.Command) error {
	switch cmd.Type {
	case domain.CommandStageFile:
		w.StageFile(cmd.File)
		return nil
	case domain.CommandClearStaged:
		w.StageFile(nil)
		return nil
	case domain.CommandUpload:
		return w.UploadAndIndex(ctx)
	case domain.CommandUploadURL:
		return w.UploadURLAndIndex(ctx, domain.UploadURLRequest{URL: cmd.URL, Filename: cmd.Filename})
	case domain.CommandReloadFiles:
		return w.ReloadFiles(ctx)
	case domain.CommandSelectFile:
		return w.SelectFile(cmd.Filename)
	case domain.CommandQuery:
		return w.Query(ctx, cmd.Query)
	case domain.CommandNavigate:
		return w.Navigate(cmd.Page)
	case domain.CommandPopState:
		if cmd.Path != "" {
			w.Visit(cmd.Path)
			return nil
		}
		w.PopState()
		return nil
	case domain.CommandBack:
		w.router.Back()
		return nil
	case domain.CommandForward:
		w.router.Forward()
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", domain.ErrInvalidInput, cmd.Type)
}

// Navigate switches view and pushes a history entry
func (w *Workspace) Navigate(page domain.Page) error {
	return w.router.Navigate(page)
}

// PopState re-derives the view from the history's current path
func (w *Workspace) PopState() domain.Page {
	return w.router.PopState()
}

// Visit records an externally changed URL and re-derives the view from it
func (w *Workspace) Visit(path string) domain.Page {
	return w.router.Visit(path)
}

// View returns a copy of the current state
func (w *Workspace) View() domain.WorkspaceView {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := domain.WorkspaceView{
		SessionID: w.sessionID,
		Page:      w.router.Page(),
		Path:      w.router.Path(),
		Statuses:  w.statuses.All(),
		Files: domain.FileRegistry{
			Available: slices.Clone(w.files.Available),
			Selected:  w.files.Selected,
		},
		LastUploaded:   w.lastUploaded,
		ProcessingInfo: domain.Placeholder,
		LanguageInfo:   domain.Placeholder,
		Query:          w.query,
		Results:        slices.Clone(w.results),
		Summary:        w.summary,
	}
	if view.Results == nil {
		view.Results = []domain.ResultItem{}
	}
	if w.staged != nil {
		view.StagedFile = w.staged.Name
	}
	if w.processing != nil {
		processing := *w.processing
		processing.SectionPatterns = slices.Clone(w.processing.SectionPatterns)
		view.Processing = &processing
		view.ProcessingInfo = processing.Summary()
		view.LanguageInfo = processing.Language()
	}
	return view
}

// Snapshot returns the part of the state that is persisted between restarts
func (w *Workspace) Snapshot() *domain.WorkspaceSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snapshot := &domain.WorkspaceSnapshot{
		SessionID:    w.sessionID,
		Selected:     w.files.Selected,
		LastUploaded: w.lastUploaded,
		UpdatedAt:    time.Now(),
	}
	if w.processing != nil {
		processing := *w.processing
		snapshot.Processing = &processing
	}
	return snapshot
}

// Restore loads a persisted snapshot. The selection is provisional until the
// next ReloadFiles confirms it still exists.
func (w *Workspace) Restore(snapshot *domain.WorkspaceSnapshot) {
	if snapshot == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	w.files = w.files.Select(snapshot.Selected)
	w.lastUploaded = snapshot.LastUploaded
	if snapshot.Processing != nil {
		processing := *snapshot.Processing
		w.processing = &processing
	}
}

// Wait blocks until the summary started by the latest query settles.
// It returns at once when that query started none.
func (w *Workspace) Wait() {
	w.mu.Lock()
	done := w.lastSummary
	w.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Close stops new summaries from starting and waits for running ones
func (w *Workspace) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.tasks.Wait()
}
