package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileRegistry_Apply(t *testing.T) {
	tests := []struct {
		name     string
		selected string
		files    []string
		expected string
	}{
		{"keeps listed selection", "b.pdf", []string{"a.pdf", "b.pdf"}, "b.pdf"},
		{"falls back to first", "gone.pdf", []string{"a.pdf", "b.pdf"}, "a.pdf"},
		{"selects first when none", "", []string{"a.pdf"}, "a.pdf"},
		{"empty list clears", "a.pdf", []string{}, ""},
		{"nil list clears", "a.pdf", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FileRegistry{Available: []string{"old.pdf"}, Selected: tt.selected}
			next := r.Apply(tt.files)

			assert.Equal(t, tt.expected, next.Selected)
			assert.NotNil(t, next.Available)
			assert.Len(t, next.Available, len(tt.files))
			if next.Selected != "" {
				assert.True(t, next.Contains(next.Selected))
			}
		})
	}
}

func TestFileRegistry_ApplyCopiesInput(t *testing.T) {
	files := []string{"a.pdf"}
	next := FileRegistry{}.Apply(files)
	files[0] = "mutated.pdf"

	assert.Equal(t, []string{"a.pdf"}, next.Available)
}

func TestFileRegistry_Clear(t *testing.T) {
	r := FileRegistry{Available: []string{"a.pdf"}, Selected: "a.pdf"}.Clear()

	assert.Empty(t, r.Available)
	assert.NotNil(t, r.Available)
	assert.False(t, r.HasSelection())
}

func TestFileRegistry_Select(t *testing.T) {
	r := FileRegistry{Available: []string{"a.pdf"}, Selected: "a.pdf"}

	next := r.Select("new.pdf")
	assert.Equal(t, "new.pdf", next.Selected)
	assert.Equal(t, []string{"a.pdf"}, next.Available)
	assert.False(t, next.Contains("new.pdf"))

	// A later Apply confirms the early selection once the list includes it
	assert.Equal(t, "new.pdf", next.Apply([]string{"a.pdf", "new.pdf"}).Selected)
}
