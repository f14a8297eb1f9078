package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Defaults used when the indexing pipeline omits language detection
const (
	UnknownLanguageCode = "und"
	UnknownLanguageName = "Unknown"
)

// Count is a number the indexing pipeline may leave out. The zero value is
// unknown. A scalar that is not an integer is kept verbatim for display.
type Count struct {
	value  int
	known  bool
	raw    string
	hasRaw bool
}

// KnownCount wraps a reported number
func KnownCount(n int) Count {
	return Count{value: n, known: true}
}

// UnknownCount is the sentinel for a missing number
func UnknownCount() Count {
	return Count{}
}

// RawCount keeps a reported value that is not an integer
func RawCount(s string) Count {
	return Count{raw: s, hasRaw: true}
}

// Value returns the number and whether an integer was reported
func (c Count) Value() (int, bool) {
	return c.value, c.known
}

// String renders the count as reported, using "?" when it is missing
func (c Count) String() string {
	switch {
	case c.known:
		return strconv.Itoa(c.value)
	case c.hasRaw:
		return c.raw
	default:
		return "?"
	}
}

// MarshalJSON encodes unknown as null and a raw value as a string
func (c Count) MarshalJSON() ([]byte, error) {
	switch {
	case c.known:
		return []byte(strconv.Itoa(c.value)), nil
	case c.hasRaw:
		return json.Marshal(c.raw)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON never fails the whole payload. Integers are counts; other
// scalars are kept as text; null, objects and arrays decode to unknown.
func (c *Count) UnmarshalJSON(data []byte) error {
	*c = UnknownCount()
	if text, ok := ScalarText(data); ok {
		if n, err := strconv.Atoi(text); err == nil && !isJSONString(data) {
			*c = KnownCount(n)
		} else {
			*c = RawCount(text)
		}
	}
	return nil
}

// ScalarText renders a JSON string, number or boolean the way it reads.
// Numbers lose a trailing ".0". It reports false for null, objects, arrays
// and malformed input.
func ScalarText(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", false
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func isJSONString(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '"'
}

// ProcessingOutcome is what one successful indexing run reported. It is kept
// as the "last processing" snapshot and replaced wholesale on the next run.
type ProcessingOutcome struct {
	Filename        string   `json:"filename,omitempty"`
	Pages           Count    `json:"pages" swaggertype:"integer"`
	ChunksIndexed   Count    `json:"chunks_indexed" swaggertype:"integer"`
	CaptionsIndexed Count    `json:"captions_indexed" swaggertype:"integer"`
	LanguageCode    string   `json:"language_code"`
	LanguageName    string   `json:"language_name"`
	SectionPatterns []string `json:"section_patterns"`
}

// Summary renders the processing line shown next to the last upload
func (p ProcessingOutcome) Summary() string {
	return fmt.Sprintf("Pages: %s | Chunks: %s | Captions: %s", p.Pages, p.ChunksIndexed, p.CaptionsIndexed)
}

// Language renders the detected language as "code (name)"
func (p ProcessingOutcome) Language() string {
	return fmt.Sprintf("%s (%s)", p.LanguageCode, p.LanguageName)
}
