package domain

import (
	"fmt"
	"strings"
)

// Page is one of the two logical views
type Page string

const (
	PageHome     Page = "home"
	PagePatterns Page = "patterns"
)

// DefaultBasePath is where the views are mounted
const DefaultBasePath = "/app"

const patternsSuffix = "/patterns"

// ParsePage converts a page name, rejecting anything unknown
func ParsePage(name string) (Page, error) {
	switch Page(name) {
	case PageHome, PagePatterns:
		return Page(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPage, name)
}

// PageFromPath derives the view from a URL path. Only the suffix matters.
func PageFromPath(path string) Page {
	if strings.HasSuffix(path, patternsSuffix) {
		return PagePatterns
	}
	return PageHome
}

// Path returns the URL path for the page under base
func (p Page) Path(base string) string {
	base = strings.TrimSuffix(base, "/")
	if p == PagePatterns {
		return base + patternsSuffix
	}
	if base == "" {
		return "/"
	}
	return base
}
