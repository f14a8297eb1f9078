package driven

import (
	"context"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// FileLister lists the documents the search index knows about
type FileLister interface {
	ListFiles(ctx context.Context) ([]string, error)
}

// DocumentUploader submits a document and returns its server-assigned name
type DocumentUploader interface {
	Upload(ctx context.Context, file domain.StagedFile) (string, error)

	// UploadURL asks the backend to fetch the document at a URL
	UploadURL(ctx context.Context, req domain.UploadURLRequest) (string, error)
}

// Indexer runs the full processing pipeline on an uploaded document
type Indexer interface {
	Index(ctx context.Context, filename string) (*domain.ProcessingOutcome, error)
}

// Searcher runs a query against the indexed content
type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) (*domain.QueryResponse, error)
}

// Summarizer condenses result texts into an answer for a query
type Summarizer interface {
	Summarize(ctx context.Context, req domain.SummaryRequest) (string, error)
}

// Backend bundles every remote collaborator the workspace talks to
type Backend interface {
	FileLister
	DocumentUploader
	Indexer
	Searcher
	Summarizer

	// HealthCheck verifies the collaborators are reachable
	HealthCheck(ctx context.Context) error
}
