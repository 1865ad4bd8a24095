package agent

import "strings"

// Action is the declared purpose of a turn as reported by the extraction model.
type Action string

const (
	ActionDraft Action = "draft" // keep drafting (default)
	ActionEdit  Action = "edit"  // correct the latest saved interaction
	ActionLog   Action = "log"   // save the current draft
)

// ParseAction maps a free-text action onto the closed set. Anything
// unrecognized degrades to ActionDraft, the only non-destructive path.
func ParseAction(s string) Action {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case ActionEdit:
		return ActionEdit
	case ActionLog:
		return ActionLog
	default:
		return ActionDraft
	}
}

// Route picks the branch for a decoded delta.
func Route(delta Delta) Action {
	switch delta.Action {
	case ActionEdit, ActionLog:
		return delta.Action
	default:
		return ActionDraft
	}
}

// RouteRaw routes directly from the extractor mapping.
func RouteRaw(parsed map[string]any) Action {
	return Route(DecodeDelta(parsed))
}
