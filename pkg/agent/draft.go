// Package agent holds the conversation-to-draft reconciliation core: parsing
// model output, merging it into the interaction draft, normalizing temporal
// fields, routing the turn and deriving follow-up suggestions and compliance.
package agent

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Draft is the live, editable interaction record rendered to the user.
// Fields prefixed with an underscore in JSON are bookkeeping and never reach storage.
type Draft struct {
	HCPID              *uint  `json:"hcp_id,omitempty"`
	HCPName            string `json:"hcp_name,omitempty"`
	InteractionType    string `json:"interaction_type,omitempty"`
	Date               string `json:"date,omitempty"`
	Time               string `json:"time,omitempty"`
	Attendees          string `json:"attendees,omitempty"`
	TopicsDiscussed    string `json:"topics_discussed,omitempty"`
	MaterialsShared    string `json:"materials_shared,omitempty"`
	SamplesDistributed string `json:"samples_distributed,omitempty"`
	ConsentRequired    bool   `json:"consent_required"`
	UsedVoiceNote      bool   `json:"used_voice_note,omitempty"`
	OccurredAt         string `json:"occurred_at,omitempty"`
	Sentiment          string `json:"sentiment,omitempty"`
	ProductsDiscussed  string `json:"products_discussed,omitempty"`
	Summary            string `json:"summary,omitempty"`
	Outcomes           string `json:"outcomes,omitempty"`
	FollowUps          string `json:"follow_ups,omitempty"`

	// Bookkeeping
	EditPayload             *EditPayload `json:"_edit_payload,omitempty"`
	Suggestions             []string     `json:"_ai_suggestions,omitempty"`
	Compliance              *Compliance  `json:"_compliance,omitempty"`
	LastEditedInteractionID *uint        `json:"_last_edited_interaction_id,omitempty"`
}

// EditPayload is attached to the draft for one turn so the caller can patch
// the latest stored interaction of the identified HCP.
type EditPayload struct {
	HCPID          *uint          `json:"hcp_id"`
	HCPName        string         `json:"hcp_name"`
	FieldsToUpdate map[string]any `json:"fields_to_update"`
}

// Clone returns a deep copy so pipeline stages never touch the caller's value.
func (d Draft) Clone() Draft {
	out := d
	out.HCPID = cloneUint(d.HCPID)
	out.LastEditedInteractionID = cloneUint(d.LastEditedInteractionID)
	if d.Suggestions != nil {
		out.Suggestions = append(make([]string, 0, len(d.Suggestions)), d.Suggestions...)
	}
	if d.Compliance != nil {
		c := Compliance{Status: d.Compliance.Status}
		if d.Compliance.Issues != nil {
			c.Issues = append([]string{}, d.Compliance.Issues...)
		}
		out.Compliance = &c
	}
	if d.EditPayload != nil {
		p := EditPayload{
			HCPID:   cloneUint(d.EditPayload.HCPID),
			HCPName: d.EditPayload.HCPName,
		}
		if d.EditPayload.FieldsToUpdate != nil {
			p.FieldsToUpdate = make(map[string]any, len(d.EditPayload.FieldsToUpdate))
			for k, v := range d.EditPayload.FieldsToUpdate {
				p.FieldsToUpdate[k] = v
			}
		}
		out.EditPayload = &p
	}
	return out
}

// Domain returns a copy with every bookkeeping field cleared.
func (d Draft) Domain() Draft {
	out := d.Clone()
	out.EditPayload = nil
	out.Suggestions = nil
	out.Compliance = nil
	out.LastEditedInteractionID = nil
	return out
}

// HasHCP reports whether the draft identifies an HCP by id or by name.
func (d Draft) HasHCP() bool {
	return (d.HCPID != nil && *d.HCPID > 0) || strings.TrimSpace(d.HCPName) != ""
}

// DomainJSON renders the domain view used as model context.
func (d Draft) DomainJSON() string {
	b, err := json.Marshal(d.Domain())
	if err != nil {
		return "{}"
	}
	return string(b)
}

// DeltaFields carries the domain values extracted from one model turn.
// A nil pointer means the model did not mention the field.
type DeltaFields struct {
	HCPID              *uint
	HCPName            *string
	InteractionType    *string
	Date               *string
	Time               *string
	Attendees          *string
	TopicsDiscussed    *string
	MaterialsShared    *string
	SamplesDistributed *string
	ConsentRequired    *bool
	UsedVoiceNote      *bool
	OccurredAt         *string
	Sentiment          *string
	ProductsDiscussed  *string
	Summary            *string
	Outcomes           *string
	FollowUps          *string
}

// Delta is the typed form of the extractor output. Action and FieldsToUpdate
// are routing-only and never merged into the draft.
type Delta struct {
	Action         Action
	Fields         DeltaFields
	FieldsToUpdate map[string]any
}

const (
	keyAction         = "action"
	keyFieldsToUpdate = "fields_to_update"
)

// DecodeDelta converts a parsed model mapping into a Delta. Values of the
// wrong shape are treated as absent, unknown keys are ignored.
func DecodeDelta(raw map[string]any) Delta {
	delta := Delta{Action: ActionDraft}
	if raw == nil {
		return delta
	}

	if v, ok := raw[keyAction].(string); ok {
		delta.Action = ParseAction(v)
	}
	if m, ok := raw[keyFieldsToUpdate].(map[string]any); ok {
		delta.FieldsToUpdate = m
	}

	f := &delta.Fields
	f.HCPID = coerceUint(raw["hcp_id"])
	f.HCPName = coerceString(raw["hcp_name"])
	f.InteractionType = coerceString(raw["interaction_type"])
	f.Date = coerceString(raw["date"])
	f.Time = coerceString(raw["time"])
	f.Attendees = coerceString(raw["attendees"])
	f.TopicsDiscussed = coerceString(raw["topics_discussed"])
	f.MaterialsShared = coerceString(raw["materials_shared"])
	f.SamplesDistributed = coerceString(raw["samples_distributed"])
	f.ConsentRequired = coerceBool(raw["consent_required"])
	f.UsedVoiceNote = coerceBool(raw["used_voice_note"])
	f.OccurredAt = coerceString(raw["occurred_at"])
	f.Sentiment = coerceString(raw["sentiment"])
	f.ProductsDiscussed = coerceString(raw["products_discussed"])
	f.Summary = coerceString(raw["summary"])
	f.Outcomes = coerceString(raw["outcomes"])
	f.FollowUps = coerceString(raw["follow_ups"])

	return delta
}

func coerceString(v any) *string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return &t
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s
	case bool:
		s := strconv.FormatBool(t)
		return &s
	case []any:
		// Models sometimes answer list-valued fields ("materials_shared": ["a", "b"]).
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := coerceString(item); s != nil && strings.TrimSpace(*s) != "" {
				parts = append(parts, strings.TrimSpace(*s))
			}
		}
		s := strings.Join(parts, ", ")
		return &s
	default:
		return nil
	}
}

func coerceBool(v any) *bool {
	switch t := v.(type) {
	case bool:
		return &t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(strings.ToLower(t)))
		if err != nil {
			switch strings.TrimSpace(strings.ToLower(t)) {
			case "yes", "y":
				b = true
			case "no", "n":
				b = false
			default:
				return nil
			}
		}
		return &b
	case float64:
		b := t != 0
		return &b
	default:
		return nil
	}
}

func coerceUint(v any) *uint {
	var n uint64
	switch t := v.(type) {
	case float64:
		if t <= 0 || t != float64(uint64(t)) {
			return nil
		}
		n = uint64(t)
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(t), 10, 64)
		if err != nil || parsed == 0 {
			return nil
		}
		n = parsed
	case json.Number:
		parsed, err := strconv.ParseUint(t.String(), 10, 64)
		if err != nil || parsed == 0 {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	id := uint(n)
	return &id
}

func cloneUint(p *uint) *uint {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// EditableFields are the stored interaction columns an edit may patch.
var EditableFields = []string{
	"interaction_type", "date", "time", "attendees", "topics_discussed",
	"materials_shared", "samples_distributed", "consent_required",
	"occurred_at", "sentiment", "products_discussed", "summary", "outcomes", "follow_ups",
}

var editableSet = func() map[string]struct{} {
	out := make(map[string]struct{}, len(EditableFields))
	for _, k := range EditableFields {
		out[k] = struct{}{}
	}
	return out
}()

// CoerceEditFields keeps the allow-listed, non-nil entries of an edit request
// and converts each to its column type: bool for consent_required, string
// otherwise. Values that cannot be converted are dropped.
func CoerceEditFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := editableSet[k]; !ok || v == nil {
			continue
		}
		if k == "consent_required" {
			if b := coerceBool(v); b != nil {
				out[k] = *b
			}
			continue
		}
		if s := coerceString(v); s != nil {
			out[k] = *s
		}
	}
	return out
}
