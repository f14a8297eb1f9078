package driving

import (
	"context"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// WorkspaceService drives one user's document workflow
type WorkspaceService interface {
	// StageFile records the document to upload next; nil clears it
	StageFile(file *domain.StagedFile)

	// UploadAndIndex submits the staged document then triggers indexing
	UploadAndIndex(ctx context.Context) error

	// UploadURLAndIndex lets the backend fetch a document then triggers indexing
	UploadURLAndIndex(ctx context.Context, req domain.UploadURLRequest) error

	// ReloadFiles refreshes the available documents
	ReloadFiles(ctx context.Context) error

	// SelectFile makes a listed document the active one
	SelectFile(name string) error

	// Query searches the selected document and starts summarization
	Query(ctx context.Context, text string) error

	// QueryAndWait runs Query, then waits for the summary that query started
	QueryAndWait(ctx context.Context, text string) error

	// Navigate switches view and pushes a history entry
	Navigate(page domain.Page) error

	// PopState re-derives the view after a browser back/forward
	PopState() domain.Page

	// Visit records an externally changed URL, then behaves like PopState
	Visit(path string) domain.Page

	// Dispatch runs a command against the matching operation
	Dispatch(ctx context.Context, cmd domain.Command) error

	// View returns a copy of the current state
	View() domain.WorkspaceView

	// Wait blocks until the latest query's summary settles
	Wait()
}

// SessionService hands out workspaces to anonymous sessions
type SessionService interface {
	// Create starts a new session and returns its token
	Create(ctx context.Context) (*domain.Session, error)

	// Resolve maps a token to its live workspace, restoring it if needed
	Resolve(ctx context.Context, token string) (WorkspaceService, string, error)

	// Persist stores the session's snapshot after a command
	Persist(ctx context.Context, sessionID string) error

	// Close stops every workspace's background work and waits for it
	Close()
}
