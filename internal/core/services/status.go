package services

import (
	"maps"

	"github.com/custodia-labs/pdflab/internal/core/domain"
)

// StatusTracker holds one status per channel. It has no locking of its own;
// the owning workspace serializes access.
type StatusTracker struct {
	channels map[domain.Channel]domain.Status
}

// NewStatusTracker creates a tracker with every channel at its initial status
func NewStatusTracker() *StatusTracker {
	t := &StatusTracker{channels: make(map[domain.Channel]domain.Status)}
	for _, ch := range domain.Channels() {
		t.channels[ch] = domain.InitialStatus(ch)
	}
	return t
}

// SetStatus replaces the channel's status wholesale
func (t *StatusTracker) SetStatus(status domain.Status, ch domain.Channel) {
	t.channels[ch] = status
}

// Get returns the channel's current status
func (t *StatusTracker) Get(ch domain.Channel) domain.Status {
	return t.channels[ch]
}

// All returns a copy of every channel's status
func (t *StatusTracker) All() map[domain.Channel]domain.Status {
	return maps.Clone(t.channels)
}
