package mocks

import "sync"

// MockHistory is a mock implementation of History for testing
type MockHistory struct {
	mu      sync.Mutex
	entries []string
	cursor  int
	pushed  []string
	PushErr error
}

// NewMockHistory creates a MockHistory positioned at path
func NewMockHistory(path string) *MockHistory {
	return &MockHistory{entries: []string{path}}
}

func (m *MockHistory) CurrentPath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.cursor]
}

func (m *MockHistory) Push(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PushErr != nil {
		return m.PushErr
	}
	m.pushed = append(m.pushed, path)
	m.entries = append(m.entries[:m.cursor+1], path)
	m.cursor = len(m.entries) - 1
	return nil
}

func (m *MockHistory) Replace(path string) {
	m.SetPath(path)
}

func (m *MockHistory) Back() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor == 0 {
		return m.entries[0], false
	}
	m.cursor--
	return m.entries[m.cursor], true
}

func (m *MockHistory) Forward() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cursor == len(m.entries)-1 {
		return m.entries[m.cursor], false
	}
	m.cursor++
	return m.entries[m.cursor], true
}

// SetPath moves the current entry without recording a push, as a browser
// back/forward does
func (m *MockHistory) SetPath(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.cursor] = path
}

// Pushed returns every pushed path
func (m *MockHistory) Pushed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.pushed...)
}
