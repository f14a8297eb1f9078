package history

import (
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/pdflab/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.History = (*Memory)(nil)

// DefaultMaxEntries bounds the stack; the oldest entries are dropped first
const DefaultMaxEntries = 100

// Memory is a browser-like history stack kept per session. Pushing discards
// any entries ahead of the cursor, as a browser does after going back.
type Memory struct {
	mu         sync.Mutex
	entries    []string
	cursor     int
	maxEntries int
}

// NewMemory creates a history with a single entry at initialPath
func NewMemory(initialPath string) *Memory {
	return &Memory{
		entries:    []string{initialPath},
		maxEntries: DefaultMaxEntries,
	}
}

// Factory adapts NewMemory to the session manager's history constructor
func Factory(initialPath string) driven.History {
	return NewMemory(initialPath)
}

func (m *Memory) CurrentPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.cursor]
}

// Push appends path after the cursor. Only absolute paths are accepted.
func (m *Memory) Push(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("history path must be absolute: %q", path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries[:m.cursor+1], path)
	if len(m.entries) > m.maxEntries {
		m.entries = m.entries[len(m.entries)-m.maxEntries:]
	}
	m.cursor = len(m.entries) - 1
	return nil
}

func (m *Memory) Replace(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.cursor] = path
}

// Back moves the cursor one entry back. It reports false at the oldest entry.
func (m *Memory) Back() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor == 0 {
		return m.entries[m.cursor], false
	}
	m.cursor--
	return m.entries[m.cursor], true
}

// Forward undoes a Back. It reports false at the newest entry.
func (m *Memory) Forward() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor == len(m.entries)-1 {
		return m.entries[m.cursor], false
	}
	m.cursor++
	return m.entries[m.cursor], true
}

// Len returns the number of entries
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
