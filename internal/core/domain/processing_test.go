package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`12`, "12"},
		{`0`, "0"},
		{`12.0`, "12"},
		{`12.5`, "12.5"},
		{`null`, "?"},
		{`"12"`, "12"},
		{`"many"`, "many"},
		{`""`, ""},
		{`true`, "true"},
		{`{}`, "?"},
		{`[1]`, "?"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var c Count
			require.NoError(t, json.Unmarshal([]byte(tt.input), &c))
			assert.Equal(t, tt.want, c.String())
		})
	}
}

func TestCount_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A Count `json:"a"`
		B Count `json:"b"`
		C Count `json:"c"`
	}{KnownCount(3), UnknownCount(), RawCount("many")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null,"c":"many"}`, string(data))
}

func TestCount_RawSurvivesSnapshot(t *testing.T) {
	var c Count
	require.NoError(t, json.Unmarshal([]byte(`"12"`), &c))
	data, err := json.Marshal(c)
	require.NoError(t, err)

	var back Count
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "12", back.String())
	_, ok := back.Value()
	assert.False(t, ok)
}

func TestScalarText(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{`"en"`, "en", true},
		{`7`, "7", true},
		{`1.5`, "1.5", true},
		{`false`, "false", true},
		{`null`, "", false},
		{`{"code":"en"}`, "", false},
		{`["en"]`, "", false},
		{``, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ScalarText([]byte(tt.input))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCount_Value(t *testing.T) {
	n, ok := KnownCount(0).Value()
	assert.True(t, ok)
	assert.Equal(t, 0, n)

	_, ok = Count{}.Value()
	assert.False(t, ok)

	_, ok = RawCount("many").Value()
	assert.False(t, ok)
}

func TestProcessingOutcome_Display(t *testing.T) {
	outcome := ProcessingOutcome{
		Pages:           KnownCount(12),
		ChunksIndexed:   UnknownCount(),
		CaptionsIndexed: KnownCount(0),
		LanguageCode:    "fr",
		LanguageName:    "French",
	}

	assert.Equal(t, "Pages: 12 | Chunks: ? | Captions: 0", outcome.Summary())

	outcome.ChunksIndexed = RawCount("many")
	assert.Equal(t, "Pages: 12 | Chunks: many | Captions: 0", outcome.Summary())
	assert.Equal(t, "fr (French)", outcome.Language())
}

func TestProcessingOutcome_MissingFieldsDecodeUnknown(t *testing.T) {
	var outcome ProcessingOutcome
	require.NoError(t, json.Unmarshal([]byte(`{"pages":5}`), &outcome))
	assert.Equal(t, "Pages: 5 | Chunks: ? | Captions: ?", outcome.Summary())
}
