package domain

import "strings"

// DefaultTopK is the result cap sent with every search
const DefaultTopK = 20

// Metadata keys the search service tags results with
const (
	MetaFilename  = "filename"
	MetaSourcePDF = "source_pdf"
)

// ResultItem is a single search hit, either a body chunk or a figure caption
type ResultItem struct {
	Text     string         `json:"text"`
	Score    *float64       `json:"score,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// BelongsTo reports whether the item was produced from the named file.
// The search service tags chunks with an exact filename and captions with a
// path-like source, so both checks are kept.
func (r ResultItem) BelongsTo(filename string) bool {
	if filename == "" || r.Metadata == nil {
		return false
	}
	if name, ok := r.Metadata[MetaFilename].(string); ok && name == filename {
		return true
	}
	if src, ok := r.Metadata[MetaSourcePDF].(string); ok && strings.Contains(src, filename) {
		return true
	}
	return false
}

// SearchRequest is the payload sent to the search collaborator
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// QueryResponse is the raw search answer
type QueryResponse struct {
	TextChunks []ResultItem `json:"text_chunks"`
	Captions   []ResultItem `json:"captions"`
}

// Merge concatenates chunks then captions, keeping each kind's order
func (q QueryResponse) Merge() []ResultItem {
	items := make([]ResultItem, 0, len(q.TextChunks)+len(q.Captions))
	items = append(items, q.TextChunks...)
	items = append(items, q.Captions...)
	return items
}

// FilterOwned keeps the items that belong to filename, preserving order
func FilterOwned(items []ResultItem, filename string) []ResultItem {
	owned := make([]ResultItem, 0, len(items))
	for _, item := range items {
		if item.BelongsTo(filename) {
			owned = append(owned, item)
		}
	}
	return owned
}

// Texts returns the non-empty text of every item
func Texts(items []ResultItem) []string {
	var texts []string
	for _, item := range items {
		if item.Text != "" {
			texts = append(texts, item.Text)
		}
	}
	return texts
}

// SummaryRequest is the payload sent to the summarization collaborator
type SummaryRequest struct {
	Texts []string `json:"texts"`
	Query string   `json:"query"`
}
