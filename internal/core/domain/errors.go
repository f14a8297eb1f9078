package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates the session token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the session token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the workspace session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoFileStaged indicates an upload was requested with nothing staged
	ErrNoFileStaged = errors.New("no file staged")

	// ErrEmptyQuery indicates the query text is blank after trimming
	ErrEmptyQuery = errors.New("empty query")

	// ErrNoFileSelected indicates a query was issued with no active file
	ErrNoFileSelected = errors.New("no file selected")

	// ErrNothingToSummarize indicates no result carried any text
	ErrNothingToSummarize = errors.New("nothing to summarize")

	// ErrNoMatches indicates the search succeeded but nothing belonged to the selection
	ErrNoMatches = errors.New("no matches for selected file")

	// ErrUnknownPage indicates a page name outside home/patterns
	ErrUnknownPage = errors.New("unknown page")

	// ErrStale indicates a response arrived after a newer request superseded it
	ErrStale = errors.New("superseded by a newer request")
)

// CollaboratorError is returned when a remote collaborator answers with a
// non-success status or an unreadable payload.
type CollaboratorError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

// Error returns the collaborator's own message when it sent one, so it can be
// shown to the user verbatim.
func (e *CollaboratorError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
	}
	return e.Op + " failed"
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// FailureMessage renders an error for a status channel, falling back to the
// stage-specific text when the error carries nothing readable.
func FailureMessage(err error, fallback string) string {
	msg := fallback
	if err != nil {
		if text := strings.TrimSpace(err.Error()); text != "" {
			msg = text
		}
	}
	return "Failed: " + msg
}
