package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripWrapper(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json untouched", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"label line", "Recommendations:\n{\"a\":1}", `{"a":1}`},
		{"fence then label", "```\nOutput:\n{\"a\":1}\n```", `{"a":1}`},
		{"label with no json kept", "just words\nmore words", "more words"},
		{"whitespace trimmed", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, stripWrapper(tc.in))
		})
	}
}

func TestExtractJSONRegion(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"no brace", "plain prose", "", false},
		{"balanced", `pre {"a":{"b":2}} post`, `{"a":{"b":2}}`, true},
		{"unbalanced tail", `pre {"a": [1,2`, `{"a": [1,2`, true},
		{"first region wins", `{"a":1} {"b":2}`, `{"a":1}`, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := extractJSONRegion(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLearningPathText(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"Learn Go"`, "Learn Go"},
		{"list", `["a","b","c"]`, "a, b, c"},
		{"empty list", `[]`, ""},
		{"number normalizes empty", `42`, ""},
		{"object normalizes empty", `{"step":1}`, ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, learningPathText(json.RawMessage(tc.raw)))
		})
	}
	assert.Equal(t, "", learningPathText(nil))
}
