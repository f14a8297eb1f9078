package domain

import "slices"

// FileRegistry holds the indexed documents known to the backend and the one
// the user is working with. Selected is empty when nothing is selected.
type FileRegistry struct {
	Available []string `json:"available"`
	Selected  string   `json:"selected,omitempty"`
}

// Apply replaces the available list and re-establishes the selection
// invariant: the previous selection survives only if it is still listed,
// otherwise the first entry is selected, or nothing when the list is empty.
func (r FileRegistry) Apply(files []string) FileRegistry {
	next := FileRegistry{Available: slices.Clone(files)}
	if next.Available == nil {
		next.Available = []string{}
	}
	switch {
	case r.Selected != "" && slices.Contains(next.Available, r.Selected):
		next.Selected = r.Selected
	case len(next.Available) > 0:
		next.Selected = next.Available[0]
	}
	return next
}

// Clear drops every file and the selection
func (r FileRegistry) Clear() FileRegistry {
	return FileRegistry{Available: []string{}}
}

// Select makes name the active file without touching the available list.
// The upload flow selects its canonical name before the list knows about it.
func (r FileRegistry) Select(name string) FileRegistry {
	return FileRegistry{Available: slices.Clone(r.Available), Selected: name}
}

// HasSelection reports whether a file is selected
func (r FileRegistry) HasSelection() bool {
	return r.Selected != ""
}

// Contains reports whether name is listed as available
func (r FileRegistry) Contains(name string) bool {
	return slices.Contains(r.Available, name)
}
