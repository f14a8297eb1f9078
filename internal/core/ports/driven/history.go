package driven

// History is the browser history seen by the navigation router
type History interface {
	// CurrentPath returns the path of the active history entry
	CurrentPath() string

	// Push adds a new entry and makes it active
	Push(path string) error

	// Replace overwrites the active entry, as a back/forward or address bar change does
	Replace(path string)

	// Back activates the previous entry, reporting false when there is none
	Back() (string, bool)

	// Forward activates the next entry, reporting false when there is none
	Forward() (string, bool)
}
