package services

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/pdflab/internal/core/domain"
	"github.com/custodia-labs/pdflab/internal/core/ports/driven"
)

// Router maps the two views to URL paths. Programmatic navigation treats the
// in-memory page as the source of truth and pushes it to history; history
// events treat the URL as the source of truth.
type Router struct {
	basePath string
	history  driven.History

	mu   sync.Mutex
	page domain.Page
}

// NewRouter creates a router whose page is derived from the current path
func NewRouter(basePath string, history driven.History) *Router {
	return &Router{
		basePath: basePath,
		history:  history,
		page:     domain.PageFromPath(history.CurrentPath()),
	}
}

// Page returns the current view
func (r *Router) Page() domain.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.page
}

// Path returns the path of the active history entry
func (r *Router) Path() string {
	return r.history.CurrentPath()
}

// Navigate pushes the page's path and switches to it. If the push fails
// the page is left unchanged.
func (r *Router) Navigate(page domain.Page) error {
	if _, err := domain.ParsePage(string(page)); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.history.Push(page.Path(r.basePath)); err != nil {
		return fmt.Errorf("push history entry: %w", err)
	}
	r.page = page
	return nil
}

// PopState re-derives the page from the current path, ignoring prior state
func (r *Router) PopState() domain.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.page = domain.PageFromPath(r.history.CurrentPath())
	return r.page
}

// Back steps to the previous history entry and re-derives the page from it.
// With no previous entry the page is unchanged.
func (r *Router) Back() domain.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path, ok := r.history.Back(); ok {
		r.page = domain.PageFromPath(path)
	}
	return r.page
}

// Forward steps to the next history entry, mirroring Back
func (r *Router) Forward() domain.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path, ok := r.history.Forward(); ok {
		r.page = domain.PageFromPath(path)
	}
	return r.page
}

// Visit makes path the active entry, as an external URL change does, then
// re-derives the page from it
func (r *Router) Visit(path string) domain.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history.Replace(path)
	r.page = domain.PageFromPath(path)
	return r.page
}
