package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/swaggo/swag"

	"github.com/custodia-labs/pdflab/internal/core/domain"
	"github.com/custodia-labs/pdflab/internal/core/ports/driving"

	// Registers the OpenAPI document served at /swagger/doc.json
	_ "github.com/custodia-labs/pdflab/docs"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// SessionResponse is returned when a session is created
// @Description New workspace session
type SessionResponse struct {
	SessionID string               `json:"session_id" example:"3q2-7wEAAAA"`
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	Workspace domain.WorkspaceView `json:"workspace"`
}

// WorkspaceResponse carries the workspace state after a command. Error is
// set when the command did not complete; the statuses already describe it.
// @Description Workspace state after a command
type WorkspaceResponse struct {
	Workspace domain.WorkspaceView `json:"workspace"`
	Error     string               `json:"error,omitempty" example:"no file selected"`
}

// SelectFileRequest selects an indexed document
type SelectFileRequest struct {
	Filename string `json:"filename" example:"report.pdf"`
}

// QueryRequest asks a question about the selected document
type QueryRequest struct {
	Query string `json:"query" example:"What are the main findings?"`
}

// NavigateRequest switches view
type NavigateRequest struct {
	Page domain.Page `json:"page" example:"patterns"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Checks the document API, the PDF worker and the snapshot store
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is unavailable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.backend != nil {
		if err := s.backend.HealthCheck(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "backend unavailable: "+err.Error())
			return
		}
	}
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unavailable: "+err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func (s *Server) handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "api documentation unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, doc)
}

// Session endpoints

// handleCreateSession godoc
// @Summary      Create session
// @Description  Starts an anonymous workspace and loads the document list
// @Tags         Sessions
// @Produce      json
// @Success      201  {object}  SessionResponse
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /sessions [post]
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.Create(r.Context())
	if err != nil {
		s.logger.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	ws, _, err := s.sessions.Resolve(r.Context(), session.Token)
	if err != nil {
		s.logger.Error("resolve new session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusCreated, SessionResponse{
		SessionID: session.ID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Workspace: ws.View(),
	})
}

// Workspace endpoints

// handleGetWorkspace godoc
// @Summary      Get workspace
// @Description  Returns statuses, documents, results and summary of the session
// @Tags         Workspace
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  WorkspaceResponse
// @Failure      401  {object}  ErrorResponse  "Missing or invalid session"
// @Router       /workspace [get]
func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	writeWorkspace(w, GetWorkspace(r.Context()), nil)
}

// handleStageFile godoc
// @Summary      Stage document
// @Description  Records the PDF to upload next. Nothing is sent to the backend yet.
// @Tags         Workspace
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "PDF document"
// @Success      200  {object}  WorkspaceResponse
// @Failure      400  {object}  ErrorResponse  "Missing or oversized file"
// @Router       /workspace/file [post]
func (s *Server) handleStageFile(w http.ResponseWriter, r *http.Request) {
	ws := GetWorkspace(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	ws.StageFile(&domain.StagedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	writeWorkspace(w, ws, nil)
}

// handleClearStaged godoc
// @Summary      Clear staged document
// @Tags         Workspace
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  WorkspaceResponse
// @Router       /workspace/file [delete]
func (s *Server) handleClearStaged(w http.ResponseWriter, r *http.Request) {
	ws := GetWorkspace(r.Context())
	ws.StageFile(nil)
	writeWorkspace(w, ws, nil)
}

// handleUpload godoc
// @Summary      Upload and index
// @Description  Uploads the staged document, indexes it and selects it
// @Tags         Workspace
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  WorkspaceResponse
// @Failure      400  {object}  WorkspaceResponse  "Nothing staged"
// @Failure      502  {object}  WorkspaceResponse  "Backend or worker failed"
// @Router       /workspace/upload [post]
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ws := GetWorkspace(r.Context())
	writeWorkspace(w, ws, ws.UploadAndIndex(r.Context()))
}

// handleUploadURL godoc
// @Summary      Upload from URL and index
// @Description  Lets the backend download the document, then indexes it
// @Tags         Workspace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.UploadURLRequest  true  "Document URL"
// @Success      200      {object}  WorkspaceResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      502      {object}  WorkspaceResponse  "Backend or worker failed"
// @Router       /workspace/upload-url [post]
func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	var req domain.UploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws := GetWorkspace(r.Context())
	writeWorkspace(w, ws, ws.UploadURLAndIndex(r.Context(), req))
}

// handleReloadFiles godoc
// @Summary      Reload documents
// @Description  Refreshes the indexed document list; the selection survives only if still listed
// @Tags         Workspace
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  WorkspaceResponse
// @Failure      502  {object}  WorkspaceResponse  "Backend failed"
// @Router       /workspace/files/reload [post]
func (s *Server) handleReloadFiles(w http.ResponseWriter, r *http.Request) {
	ws := GetWorkspace(r.Context())
	writeWorkspace(w, ws, ws.ReloadFiles(r.Context()))
}

// handleSelectFile godoc
// @Summary      Select document
// @Tags         Workspace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      SelectFileRequest  true  "Document name"
// @Success      200      {object}  WorkspaceResponse
// @Failure      404      {object}  WorkspaceResponse  "Document not listed"
// @Router       /workspace/selection [put]
func (s *Server) handleSelectFile(w http.ResponseWriter, r *http.Request) {
	var req SelectFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws := GetWorkspace(r.Context())
	writeWorkspace(w, ws, ws.SelectFile(req.Filename))
}

// handleQuery godoc
// @Summary      Ask a question
// @Description  Searches the selected document. Summarization continues in the background unless wait=true.
// @Tags         Workspace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      QueryRequest  true   "Question"
// @Param        wait     query     bool          false  "Wait for the summary"
// @Success      200      {object}  WorkspaceResponse
// @Failure      400      {object}  WorkspaceResponse  "Empty query or no document selected"
// @Failure      502      {object}  WorkspaceResponse  "Backend failed"
// @Router       /workspace/query [post]
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws := GetWorkspace(r.Context())
	query := ws.Query
	if r.URL.Query().Get("wait") == "true" {
		query = ws.QueryAndWait
	}
	writeWorkspace(w, ws, query(r.Context(), req.Query))
}

// handleNavigate godoc
// @Summary      Switch view
// @Tags         Workspace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      NavigateRequest  true  "Target page"
// @Success      200      {object}  WorkspaceResponse
// @Failure      400      {object}  WorkspaceResponse  "Unknown page"
// @Router       /workspace/navigate [post]
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws := GetWorkspace(r.Context())
	writeWorkspace(w, ws, ws.Navigate(req.Page))
}

// handleCommand godoc
// @Summary      Dispatch command
// @Description  Runs any non-file command (upload, upload_url, reload_files, select_file, query, navigate, pop_state, back, forward)
// @Tags         Workspace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.Command  true  "Command"
// @Success      200      {object}  WorkspaceResponse
// @Failure      400      {object}  WorkspaceResponse  "Invalid command"
// @Router       /workspace/commands [post]
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var cmd domain.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if cmd.Type == domain.CommandStageFile {
		writeError(w, http.StatusBadRequest, "stage files with POST /api/v1/workspace/file")
		return
	}

	ws := GetWorkspace(r.Context())
	writeWorkspace(w, ws, ws.Dispatch(r.Context(), cmd))
}

// handlePage serves the view routes. The request path is the new URL, so
// the page is re-derived from it as on a browser back/forward.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ws := GetWorkspace(r.Context())
	ws.Visit(r.URL.Path)
	writeWorkspace(w, ws, nil)
}

// Helper functions

// writeWorkspace renders the workspace with a status code derived from err
func writeWorkspace(w http.ResponseWriter, ws driving.WorkspaceService, err error) {
	resp := WorkspaceResponse{Workspace: ws.View()}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, statusFor(err), resp)
}

func statusFor(err error) int {
	var collabErr *domain.CollaboratorError
	switch {
	case err == nil, errors.Is(err, domain.ErrNoMatches):
		return http.StatusOK
	case errors.Is(err, domain.ErrNoFileStaged),
		errors.Is(err, domain.ErrEmptyQuery),
		errors.Is(err, domain.ErrNoFileSelected),
		errors.Is(err, domain.ErrUnknownPage),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStale):
		return http.StatusConflict
	case errors.As(err, &collabErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
