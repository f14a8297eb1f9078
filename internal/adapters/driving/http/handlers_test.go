package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdflab/internal/adapters/driven/history"
	"github.com/custodia-labs/pdflab/internal/core/domain"
	"github.com/custodia-labs/pdflab/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/pdflab/internal/core/services"
)

type testEnv struct {
	server  *Server
	backend *mocks.MockBackend
	store   *mocks.MockWorkspaceStore
	token   string
}

// setupTestServer wires a real session manager to mocked collaborators and
// opens one session
func setupTestServer(t *testing.T, files ...string) *testEnv {
	t.Helper()

	backend := mocks.NewMockBackend()
	backend.SetFiles(files...)
	store := mocks.NewMockWorkspaceStore()

	sessions := services.NewSessionManager(services.SessionManagerConfig{
		Backend:    backend,
		Store:      store,
		Auth:       mocks.NewMockAuthAdapter(),
		NewHistory: history.Factory,
	})
	t.Cleanup(sessions.Close)

	server := NewServer(DefaultConfig(), sessions, backend, nil)
	env := &testEnv{server: server, backend: backend, store: store}

	rr := env.do(t, "POST", "/api/v1/sessions", nil, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	env.token = resp.Token
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) stage(t *testing.T, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, _ = part.Write(content)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/workspace/file", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.token)

	rr := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeWorkspace(t *testing.T, rr *httptest.ResponseRecorder) WorkspaceResponse {
	t.Helper()
	var resp WorkspaceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func TestHandleHealth(t *testing.T) {
	env := setupTestServer(t)

	rr := env.do(t, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ok"`)
}

func TestHandleVersion(t *testing.T) {
	env := setupTestServer(t)

	rr := env.do(t, "GET", "/version", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"dev"`)
}

func TestHandleReady(t *testing.T) {
	env := setupTestServer(t)

	rr := env.do(t, "GET", "/ready", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	env.backend.HealthErr = errors.New("worker down")
	rr = env.do(t, "GET", "/ready", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "worker down")
}

func TestHandleSwaggerDoc(t *testing.T) {
	env := setupTestServer(t)

	rr := env.do(t, "GET", "/swagger/doc.json", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/workspace/query")
}

func TestHandleCreateSession(t *testing.T) {
	env := setupTestServer(t, "a.pdf", "b.pdf")

	rr := env.do(t, "POST", "/api/v1/sessions", nil, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, "token-"+resp.SessionID, resp.Token)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, resp.Workspace.Files.Available)
	assert.Equal(t, "a.pdf", resp.Workspace.Files.Selected)
	assert.Equal(t, domain.PageHome, resp.Workspace.Page)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, resp.Token, cookies[0].Value)
}

func TestHandleGetWorkspace_Unauthorized(t *testing.T) {
	env := setupTestServer(t)

	rr := env.do(t, "GET", "/api/v1/workspace", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, "GET", "/api/v1/workspace", nil, "token-unknown")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHandleGetWorkspace_InitialStatuses(t *testing.T) {
	env := setupTestServer(t)

	rr := env.do(t, "GET", "/api/v1/workspace", nil, env.token)
	require.Equal(t, http.StatusOK, rr.Code)

	ws := decodeWorkspace(t, rr).Workspace
	assert.Equal(t, domain.MsgNoFileStaged, ws.Status(domain.ChannelUpload).Message)
	assert.Equal(t, domain.MsgWaitingForQuery, ws.Status(domain.ChannelQuery).Message)
	assert.Equal(t, domain.MsgNoSummary, ws.Status(domain.ChannelSummary).Message)
	assert.Equal(t, domain.Placeholder, ws.ProcessingInfo)
	assert.Equal(t, domain.Placeholder, ws.LanguageInfo)
}

func TestHandleUpload_Flow(t *testing.T) {
	env := setupTestServer(t)
	env.backend.UploadName = "report_1.pdf"
	env.backend.Outcome = &domain.ProcessingOutcome{
		Pages:           domain.KnownCount(4),
		ChunksIndexed:   domain.KnownCount(10),
		CaptionsIndexed: domain.KnownCount(2),
		LanguageCode:    "en",
		LanguageName:    "English",
	}

	rr := env.stage(t, "report.pdf", []byte("%PDF"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "report.pdf", decodeWorkspace(t, rr).Workspace.StagedFile)

	env.backend.SetFiles("report_1.pdf")
	savesBefore := env.store.Saves()

	rr = env.do(t, "POST", "/api/v1/workspace/upload", nil, env.token)
	require.Equal(t, http.StatusOK, rr.Code)

	ws := decodeWorkspace(t, rr).Workspace
	assert.Equal(t, domain.Status{Message: domain.MsgIndexed, Tone: domain.ToneOK}, ws.Status(domain.ChannelUpload))
	assert.Equal(t, "report_1.pdf", ws.Files.Selected)
	assert.Equal(t, "report_1.pdf", ws.LastUploaded)
	assert.Equal(t, "Pages: 4 | Chunks: 10 | Captions: 2", ws.ProcessingInfo)
	assert.Equal(t, "en (English)", ws.LanguageInfo)
	assert.Equal(t, []string{"report_1.pdf"}, env.backend.Indexed())
	assert.Greater(t, env.store.Saves(), savesBefore)
}

func TestHandleUpload_NothingStaged(t *testing.T) {
	env := setupTestServer(t)

	rr := env.do(t, "POST", "/api/v1/workspace/upload", nil, env.token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	resp := decodeWorkspace(t, rr)
	assert.Equal(t, domain.ToneWarn, resp.Workspace.Status(domain.ChannelUpload).Tone)
	assert.Equal(t, 0, env.backend.TotalCalls()-env.backend.ListCalls())
}

func TestHandleUpload_BackendError(t *testing.T) {
	env := setupTestServer(t)
	env.backend.UploadErr = &domain.CollaboratorError{Op: "upload", StatusCode: 413, Body: "File too large"}

	env.stage(t, "big.pdf", []byte("%PDF"))
	rr := env.do(t, "POST", "/api/v1/workspace/upload", nil, env.token)
	assert.Equal(t, http.StatusBadGateway, rr.Code)

	ws := decodeWorkspace(t, rr).Workspace
	assert.Equal(t, domain.Status{Message: "Failed: File too large", Tone: domain.ToneError}, ws.Status(domain.ChannelUpload))
	assert.Empty(t, env.backend.Indexed())
}

func TestHandleClearStaged(t *testing.T) {
	env := setupTestServer(t)
	env.stage(t, "a.pdf", []byte("%PDF"))

	rr := env.do(t, "DELETE", "/api/v1/workspace/file", nil, env.token)
	require.Equal(t, http.StatusOK, rr.Code)

	ws := decodeWorkspace(t, rr).Workspace
	assert.Empty(t, ws.StagedFile)
	assert.Equal(t, domain.MsgNoFileStaged, ws.Status(domain.ChannelUpload).Message)
}

func TestHandleUploadURL(t *testing.T) {
	env := setupTestServer(t)
	env.backend.UploadName = "remote.pdf"

	rr := env.do(t, "POST", "/api/v1/workspace/upload-url",
		domain.UploadURLRequest{URL: "https://example.com/remote.pdf"}, env.token)
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, "https://example.com/remote.pdf", env.backend.URLUploads()[0].URL)
	assert.Equal(t, []string{"remote.pdf"}, env.backend.Indexed())
}

func TestHandleQuery_WithSummary(t *testing.T) {
	env := setupTestServer(t, "a.pdf")
	env.backend.Response = &domain.QueryResponse{
		TextChunks: []domain.ResultItem{
			{Text: "alpha", Metadata: map[string]any{"filename": "a.pdf"}},
			{Text: "other", Metadata: map[string]any{"filename": "b.pdf"}},
		},
	}
	env.backend.SummaryText = "alpha summary"

	rr := env.do(t, "PUT", "/api/v1/workspace/selection", SelectFileRequest{Filename: "a.pdf"}, env.token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, "POST", "/api/v1/workspace/query?wait=true", QueryRequest{Query: "what?"}, env.token)
	require.Equal(t, http.StatusOK, rr.Code)

	ws := decodeWorkspace(t, rr).Workspace
	require.Len(t, ws.Results, 1)
	assert.Equal(t, "alpha", ws.Results[0].Text)
	assert.Equal(t, "Showing 1 results.", ws.Status(domain.ChannelQuery).Message)
	assert.Equal(t, "alpha summary", ws.Summary)
	assert.Equal(t, domain.Status{Message: domain.MsgSummaryReady, Tone: domain.ToneOK}, ws.Status(domain.ChannelSummary))
}

func TestHandleQuery_ConcurrentWaits(t *testing.T) {
	env := setupTestServer(t, "a.pdf")
	env.backend.SearchFn = func(ctx context.Context, req domain.SearchRequest) (*domain.QueryResponse, error) {
		return &domain.QueryResponse{TextChunks: []domain.ResultItem{
			{Text: req.Query, Metadata: map[string]any{"filename": "a.pdf"}},
		}}, nil
	}
	env.backend.SummarizeFn = func(ctx context.Context, req domain.SummaryRequest) (string, error) {
		time.Sleep(time.Millisecond)
		return "summary of " + req.Query, nil
	}

	var wg sync.WaitGroup
	codes := make(chan int, 40)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				body, _ := json.Marshal(QueryRequest{Query: fmt.Sprintf("q%d-%d", i, j)})
				req := httptest.NewRequest("POST", "/api/v1/workspace/query?wait=true", bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Authorization", "Bearer "+env.token)
				rr := httptest.NewRecorder()
				env.server.Handler().ServeHTTP(rr, req)
				codes <- rr.Code
			}
		}(i)
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		assert.Contains(t, []int{http.StatusOK, http.StatusConflict}, code)
	}

	rr := env.do(t, "GET", "/api/v1/workspace", nil, env.token)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp WorkspaceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "summary of "+resp.Workspace.Query, resp.Workspace.Summary)
}

func TestHandleQuery_NoSelection(t *testing.T) {
	env := setupTestServer(t)

	rr := env.do(t, "POST", "/api/v1/workspace/query", QueryRequest{Query: "what?"}, env.token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, env.backend.Searches())
}

func TestHandleQuery_NoMatches(t *testing.T) {
	env := setupTestServer(t, "a.pdf")
	env.backend.Response = &domain.QueryResponse{
		TextChunks: []domain.ResultItem{{Text: "x", Metadata: map[string]any{"filename": "b.pdf"}}},
	}

	env.do(t, "PUT", "/api/v1/workspace/selection", SelectFileRequest{Filename: "a.pdf"}, env.token)
	rr := env.do(t, "POST", "/api/v1/workspace/query", QueryRequest{Query: "x"}, env.token)
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := decodeWorkspace(t, rr)
	assert.Equal(t, domain.Status{Message: domain.MsgNoMatches, Tone: domain.ToneWarn}, resp.Workspace.Status(domain.ChannelQuery))
	assert.Empty(t, env.backend.Summaries())
}

func TestHandleQuery_InvalidBody(t *testing.T) {
	env := setupTestServer(t)

	req := httptest.NewRequest("POST", "/api/v1/workspace/query", strings.NewReader("{"))
	req.Header.Set("Authorization", "Bearer "+env.token)
	rr := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleSelectFile_NotListed(t *testing.T) {
	env := setupTestServer(t, "a.pdf")

	rr := env.do(t, "PUT", "/api/v1/workspace/selection", SelectFileRequest{Filename: "zzz.pdf"}, env.token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "a.pdf", decodeWorkspace(t, rr).Workspace.Files.Selected)
}

func TestHandleReloadFiles(t *testing.T) {
	env := setupTestServer(t, "a.pdf")
	env.backend.SetFiles("a.pdf", "c.pdf")

	rr := env.do(t, "POST", "/api/v1/workspace/files/reload", nil, env.token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"a.pdf", "c.pdf"}, decodeWorkspace(t, rr).Workspace.Files.Available)

	env.backend.ListErr = &domain.CollaboratorError{Op: "list files", StatusCode: 500}
	rr = env.do(t, "POST", "/api/v1/workspace/files/reload", nil, env.token)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Empty(t, decodeWorkspace(t, rr).Workspace.Files.Available)
}

func TestHandleNavigate(t *testing.T) {
	env := setupTestServer(t)

	rr := env.do(t, "POST", "/api/v1/workspace/navigate", NavigateRequest{Page: domain.PagePatterns}, env.token)
	require.Equal(t, http.StatusOK, rr.Code)

	ws := decodeWorkspace(t, rr).Workspace
	assert.Equal(t, domain.PagePatterns, ws.Page)
	assert.Equal(t, "/app/patterns", ws.Path)

	rr = env.do(t, "POST", "/api/v1/workspace/navigate", NavigateRequest{Page: "settings"}, env.token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, domain.PagePatterns, decodeWorkspace(t, rr).Workspace.Page)
}

func TestHandlePage_CookieSession(t *testing.T) {
	env := setupTestServer(t)

	for path, want := range map[string]domain.Page{
		"/app/patterns": domain.PagePatterns,
		"/app":          domain.PageHome,
	} {
		req := httptest.NewRequest("GET", path, nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: env.token})
		rr := httptest.NewRecorder()
		env.server.Handler().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, want, decodeWorkspace(t, rr).Workspace.Page, path)
	}
}

func TestHandleCommand(t *testing.T) {
	env := setupTestServer(t, "a.pdf")

	rr := env.do(t, "POST", "/api/v1/workspace/commands",
		domain.Command{Type: domain.CommandSelectFile, Filename: "a.pdf"}, env.token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "a.pdf", decodeWorkspace(t, rr).Workspace.Files.Selected)

	rr = env.do(t, "POST", "/api/v1/workspace/commands",
		domain.Command{Type: domain.CommandPopState, Path: "/app/patterns"}, env.token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.PagePatterns, decodeWorkspace(t, rr).Workspace.Page)

	rr = env.do(t, "POST", "/api/v1/workspace/commands", domain.Command{Type: "explode"}, env.token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, "POST", "/api/v1/workspace/commands", domain.Command{Type: domain.CommandStageFile}, env.token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{nil, http.StatusOK},
		{domain.ErrNoMatches, http.StatusOK},
		{domain.ErrNoFileStaged, http.StatusBadRequest},
		{domain.ErrEmptyQuery, http.StatusBadRequest},
		{domain.ErrNoFileSelected, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", domain.ErrUnknownPage), http.StatusBadRequest},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrStale, http.StatusConflict},
		{fmt.Errorf("search: %w", &domain.CollaboratorError{Op: "search"}), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.expected {
			t.Errorf("statusFor(%v): expected %d, got %d", tt.err, tt.expected, got)
		}
	}
}
