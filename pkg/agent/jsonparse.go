package agent

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

// parseStrategy tries to decode one JSON object out of cleaned model text.
type parseStrategy struct {
	name  string
	parse func(text string) (map[string]any, bool)
}

// parseChain is tried in order; the first strategy that yields an object wins.
var parseChain = []parseStrategy{
	{name: "strict", parse: strictObject},
	{name: "first_balanced", parse: firstBalancedObject},
	{name: "greedy_span", parse: greedyObject},
}

var (
	leadingFence  = regexp.MustCompile("(?i)^```(json)?")
	trailingFence = regexp.MustCompile("```$")
)

// ParseJSON turns raw model text into a mapping. It never fails: text that
// holds no decodable object yields an empty, non-nil map.
func ParseJSON(raw string) map[string]any {
	out, _ := parseJSONWithStrategy(raw)
	return out
}

// parseJSONWithStrategy also reports which strategy succeeded ("" when none did).
func parseJSONWithStrategy(raw string) (map[string]any, string) {
	text := stripFences(raw)
	if text == "" {
		return map[string]any{}, ""
	}
	for _, s := range parseChain {
		if obj, ok := s.parse(text); ok {
			return obj, s.name
		}
	}
	return map[string]any{}, ""
}

func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimSpace(leadingFence.ReplaceAllString(text, ""))
	text = strings.TrimSpace(trailingFence.ReplaceAllString(text, ""))
	return text
}

func strictObject(text string) (map[string]any, bool) {
	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err != nil || out == nil {
		return nil, false
	}
	return out, true
}

// firstBalancedObject decodes the first brace-balanced span that holds an
// object, skipping braces that appear inside JSON strings. One pass collects
// every closed span; candidates are then tried by start position.
func firstBalancedObject(text string) (map[string]any, bool) {
	type span struct{ start, end int }
	var (
		open     []int
		spans    []span
		inString bool
		escape   bool
	)
	for i, r := range text {
		if inString {
			switch {
			case escape:
				escape = false
			case r == '\\':
				escape = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = len(open) > 0
		case '{':
			open = append(open, i)
		case '}':
			if len(open) == 0 {
				continue
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			spans = append(spans, span{start: start, end: i + 1})
		}
	}

	sort.Slice(spans, func(a, b int) bool { return spans[a].start < spans[b].start })
	for _, sp := range spans {
		if obj, ok := strictObject(text[sp.start:sp.end]); ok {
			return obj, true
		}
	}
	return nil, false
}

func greedyObject(text string) (map[string]any, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, false
	}
	return strictObject(text[start : end+1])
}
