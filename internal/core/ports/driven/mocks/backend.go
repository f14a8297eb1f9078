package mocks

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// MockBackend is a mock implementation of Backend for testing.
// Canned answers come from the exported fields unless a Fn hook is set.
// Every call is recorded so tests can assert what was (not) dispatched.
type MockBackend struct {
	mu sync.Mutex

	Files       []string
	ListErr     error
	UploadName  string
	UploadErr   error
	Outcome     *domain.ProcessingOutcome
	IndexErr    error
	Response    *domain.QueryResponse
	SearchErr   error
	SummaryText string
	SummaryErr  error
	HealthErr   error

	ListFilesFn func(ctx context.Context) ([]string, error)
	UploadFn    func(ctx context.Context, file domain.StagedFile) (string, error)
	IndexFn     func(ctx context.Context, filename string) (*domain.ProcessingOutcome, error)
	SearchFn    func(ctx context.Context, req domain.SearchRequest) (*domain.QueryResponse, error)
	SummarizeFn func(ctx context.Context, req domain.SummaryRequest) (string, error)

	listCalls  int
	uploads    []domain.StagedFile
	urlUploads []domain.UploadURLRequest
	indexed    []string
	searches   []domain.SearchRequest
	summaries  []domain.SummaryRequest
}

// NewMockBackend creates a new MockBackend with an empty file list
func NewMockBackend() *MockBackend {
	return &MockBackend{Files: []string{}}
}

func (m *MockBackend) ListFiles(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.listCalls++
	fn, files, err := m.ListFilesFn, slices.Clone(m.Files), m.ListErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (m *MockBackend) Upload(ctx context.Context, file domain.StagedFile) (string, error) {
	m.mu.Lock()
	m.uploads = append(m.uploads, file)
	fn, name, err := m.UploadFn, m.UploadName, m.UploadErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, file)
	}
	if err != nil {
		return "", err
	}
	if name == "" {
		name = file.Name
	}
	return name, nil
}

func (m *MockBackend) UploadURL(ctx context.Context, req domain.UploadURLRequest) (string, error) {
	m.mu.Lock()
	m.urlUploads = append(m.urlUploads, req)
	name, err := m.UploadName, m.UploadErr
	m.mu.Unlock()

	if err != nil {
		return "", err
	}
	if name == "" {
		name = req.Filename
	}
	return name, nil
}

func (m *MockBackend) Index(ctx context.Context, filename string) (*domain.ProcessingOutcome, error) {
	m.mu.Lock()
	m.indexed = append(m.indexed, filename)
	fn, outcome, err := m.IndexFn, m.Outcome, m.IndexErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, filename)
	}
	if err != nil {
		return nil, err
	}
	if outcome == nil {
		return &domain.ProcessingOutcome{
			Filename:     filename,
			LanguageCode: domain.UnknownLanguageCode,
			LanguageName: domain.UnknownLanguageName,
		}, nil
	}
	copied := *outcome
	return &copied, nil
}

func (m *MockBackend) Search(ctx context.Context, req domain.SearchRequest) (*domain.QueryResponse, error) {
	m.mu.Lock()
	m.searches = append(m.searches, req)
	fn, resp, err := m.SearchFn, m.Response, m.SearchErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return &domain.QueryResponse{}, nil
	}
	return resp, nil
}

func (m *MockBackend) Summarize(ctx context.Context, req domain.SummaryRequest) (string, error) {
	m.mu.Lock()
	m.summaries = append(m.summaries, req)
	fn, text, err := m.SummarizeFn, m.SummaryText, m.SummaryErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func (m *MockBackend) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.HealthErr
}

// Helper methods for testing

// SetFiles replaces the listed files
func (m *MockBackend) SetFiles(files ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Files = files
}

// ListCalls returns how many times ListFiles was called
func (m *MockBackend) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// Uploads returns every submitted file
func (m *MockBackend) Uploads() []domain.StagedFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.uploads)
}

// URLUploads returns every URL submission
func (m *MockBackend) URLUploads() []domain.UploadURLRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.urlUploads)
}

// Indexed returns every filename passed to Index
func (m *MockBackend) Indexed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.indexed)
}

// Searches returns every search request
func (m *MockBackend) Searches() []domain.SearchRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.searches)
}

// Summaries returns every summarization request
func (m *MockBackend) Summaries() []domain.SummaryRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.summaries)
}

// TotalCalls returns the number of collaborator calls of any kind
func (m *MockBackend) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls + len(m.uploads) + len(m.urlUploads) + len(m.indexed) + len(m.searches) + len(m.summaries)
}
