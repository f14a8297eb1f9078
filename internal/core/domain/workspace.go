package domain

import "time"

// StagedFile is a document chosen for upload but not yet sent
type StagedFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// WorkspaceView is a read-only copy of everything a workspace exposes
type WorkspaceView struct {
	SessionID      string             `json:"session_id,omitempty"`
	Page           Page               `json:"page"`
	Path           string             `json:"path"`
	Statuses       map[Channel]Status `json:"statuses"`
	Files          FileRegistry       `json:"files"`
	StagedFile     string             `json:"staged_file,omitempty"`
	LastUploaded   string             `json:"last_uploaded,omitempty"`
	Processing     *ProcessingOutcome `json:"processing,omitempty"`
	ProcessingInfo string             `json:"processing_info"`
	LanguageInfo   string             `json:"language_info"`
	Query          string             `json:"query,omitempty"`
	Results        []ResultItem       `json:"results"`
	Summary        string             `json:"summary"`
}

// Status returns the named channel's status
func (v WorkspaceView) Status(ch Channel) Status {
	return v.Statuses[ch]
}

// WorkspaceSnapshot is the part of a workspace that survives a restart.
// The current page and in-flight results are deliberately absent.
type WorkspaceSnapshot struct {
	SessionID    string             `json:"session_id"`
	Selected     string             `json:"selected,omitempty"`
	LastUploaded string             `json:"last_uploaded,omitempty"`
	Processing   *ProcessingOutcome `json:"processing,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Placeholder shown for values that have not been produced yet
const Placeholder = "-"
