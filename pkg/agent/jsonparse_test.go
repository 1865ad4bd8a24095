package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		want         map[string]any
		wantStrategy string
	}{
		{
			name:         "plain object",
			raw:          `{"hcp_name":"Asha Sharma","action":"draft"}`,
			want:         map[string]any{"hcp_name": "Asha Sharma", "action": "draft"},
			wantStrategy: "strict",
		},
		{
			name:         "json fence",
			raw:          "```json\n{\"date\":\"today\"}\n```",
			want:         map[string]any{"date": "today"},
			wantStrategy: "strict",
		},
		{
			name:         "upper case fence",
			raw:          "```JSON\n{\"sentiment\":\"positive\"}```",
			want:         map[string]any{"sentiment": "positive"},
			wantStrategy: "strict",
		},
		{
			name:         "bare fence",
			raw:          "```\n{\"time\":\"10:30\"}\n```",
			want:         map[string]any{"time": "10:30"},
			wantStrategy: "strict",
		},
		{
			name:         "prose around object",
			raw:          `Sure! Here you go: {"action":"log"} Let me know {if} you need more.`,
			want:         map[string]any{"action": "log"},
			wantStrategy: "first_balanced",
		},
		{
			name:         "braces inside strings",
			raw:          `Result: {"summary":"used {braces} and \"quotes\"","action":"draft"} done`,
			want:         map[string]any{"summary": `used {braces} and "quotes"`, "action": "draft"},
			wantStrategy: "first_balanced",
		},
		{
			name:         "undecodable span before a valid one",
			raw:          `{not json} then {"consent_required":true}`,
			want:         map[string]any{"consent_required": true},
			wantStrategy: "first_balanced",
		},
		{
			name: "nested object",
			raw:  `ok {"action":"edit","fields_to_update":{"date":"2024-01-02"}}`,
			want: map[string]any{
				"action":           "edit",
				"fields_to_update": map[string]any{"date": "2024-01-02"},
			},
			wantStrategy: "first_balanced",
		},
		{
			name:         "unclosed outer brace",
			raw:          `{"draft": {"date":"today"}`,
			want:         map[string]any{"date": "today"},
			wantStrategy: "first_balanced",
		},
		{
			name:         "long run of open braces",
			raw:          strings.Repeat("{", 20000) + `{"sentiment":"neutral"}`,
			want:         map[string]any{"sentiment": "neutral"},
			wantStrategy: "first_balanced",
		},
		{name: "only open braces", raw: strings.Repeat("{", 20000), want: map[string]any{}},
		{name: "empty", raw: "", want: map[string]any{}},
		{name: "whitespace", raw: "  \n\t ", want: map[string]any{}},
		{name: "truncated", raw: `{"hcp_name": "Asha", "date": `, want: map[string]any{}},
		{name: "array", raw: `[1, 2, 3]`, want: map[string]any{}},
		{name: "null", raw: `null`, want: map[string]any{}},
		{name: "plain prose", raw: `I could not understand the note.`, want: map[string]any{}},
		{name: "closing brace first", raw: `} nothing {`, want: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, strategy := parseJSONWithStrategy(tt.raw)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStrategy, strategy)

			assert.Equal(t, tt.want, ParseJSON(tt.raw))
		})
	}
}

func TestParseJSON_NeverPanics(t *testing.T) {
	inputs := []string{
		"{", "}", "{{{{", "}}}}", `{"a":"\`, `"{"`, "```", "```json", "```json\n```",
		`{"a": "unterminated}`, "\x00{\x00}", `{"a":1}}`, `{{"a":1}`,
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			assert.NotNil(t, ParseJSON(in))
		}, "input %q", in)
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("  ```json\n{\"a\":1}\n```  "))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
	assert.Equal(t, "", stripFences("```"))
}

func TestGreedyObject(t *testing.T) {
	got, ok := greedyObject(`prefix {"a": {"b": 2}} suffix`)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": float64(2)}}, got)

	_, ok = greedyObject(`{"a": 1} and {"b": 2}`)
	assert.False(t, ok)

	_, ok = greedyObject(`no braces here`)
	assert.False(t, ok)
}
