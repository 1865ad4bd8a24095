package agent

import (
	"context"
	"fmt"
	"strings"
)

// Completer sends one system + user prompt pair to a language model and
// returns the raw text of its reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type State string

const (
	StateExtract     State = "extract"
	StateDraftUpdate State = "draft_update"
	StateEditIntent  State = "edit_intent"
	StateLogIntent   State = "log_intent"
	StateDone        State = "done"
)

// IntentTag names the tool a turn ended in. Clients key UI behaviour off it.
type IntentTag string

const (
	IntentExtract         IntentTag = "Extract"
	IntentDraftUpdate     IntentTag = "DraftUpdate"
	IntentEditInteraction IntentTag = "EditInteraction"
	IntentLogInteraction  IntentTag = "LogInteraction"
)

// Extraction keeps the model reply next to what was recovered from it.
type Extraction struct {
	Raw      string         `json:"raw"`
	Parsed   map[string]any `json:"parsed"`
	Strategy string         `json:"strategy,omitempty"`
}

type TurnResult struct {
	Draft            Draft
	Intent           IntentTag
	AssistantMessage string
	Action           Action
	Extraction       Extraction
	States           []State
}

// Pipeline runs one chat turn: extract, then exactly one of draft update,
// edit intent or log intent. It never writes to storage.
type Pipeline struct {
	extractor  Completer
	advisor    *Advisor
	normalizer *Normalizer
	logger     Logger
}

func NewPipeline(extractor Completer, advisor *Advisor, normalizer *Normalizer, logger Logger) *Pipeline {
	if logger == nil {
		logger = nopLogger{}
	}
	if normalizer == nil {
		normalizer = NewNormalizer(DefaultTimezone, WithNormalizerLogger(logger))
	}
	if advisor == nil {
		advisor = NewAdvisor(nil, logger)
	}
	return &Pipeline{
		extractor:  extractor,
		advisor:    advisor,
		normalizer: normalizer,
		logger:     logger,
	}
}

// RunTurn processes one user message against the current draft. The input
// draft is left untouched; the updated draft is only returned on success.
func (p *Pipeline) RunTurn(ctx context.Context, message string, draft Draft) (*TurnResult, error) {
	res := &TurnResult{States: []State{StateExtract}}

	raw, err := p.extractor.Complete(ctx, ExtractSystemPrompt, extractUserPrompt(message, draft.DomainJSON()))
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}
	raw = strings.TrimSpace(raw)
	parsed, strategy := parseJSONWithStrategy(raw)
	delta := DecodeDelta(parsed)

	res.Extraction = Extraction{Raw: raw, Parsed: parsed, Strategy: strategy}
	res.Intent = IntentExtract
	res.AssistantMessage = MsgExtracted
	res.Action = Route(delta)

	p.logger.Debug(logModule, "Extraction parsed", map[string]interface{}{
		"strategy": strategy,
		"action":   string(res.Action),
		"keys":     len(parsed),
	})

	var next Draft
	switch res.Action {
	case ActionEdit:
		res.States = append(res.States, StateEditIntent)
		next, err = p.editIntent(ctx, draft, delta, res)
	case ActionLog:
		res.States = append(res.States, StateLogIntent)
		next, err = p.logIntent(ctx, draft, delta, res)
	default:
		res.States = append(res.States, StateDraftUpdate)
		next, err = p.draftUpdate(ctx, draft, delta, res)
	}
	if err != nil {
		return nil, err
	}

	res.Draft = next
	res.States = append(res.States, StateDone)
	return res, nil
}

func (p *Pipeline) draftUpdate(ctx context.Context, draft Draft, delta Delta, res *TurnResult) (Draft, error) {
	next, err := p.refine(ctx, draft, delta)
	if err != nil {
		return Draft{}, err
	}
	next.EditPayload = nil

	res.Intent = IntentDraftUpdate
	if next.HasHCP() {
		res.AssistantMessage = MsgDraftUpdated
	} else {
		res.AssistantMessage = MsgDraftNeedsHCP
	}
	return next, nil
}

func (p *Pipeline) editIntent(ctx context.Context, draft Draft, delta Delta, res *TurnResult) (Draft, error) {
	payload := newEditPayload(draft, delta)

	next, err := p.refine(ctx, draft, delta)
	if err != nil {
		return Draft{}, err
	}

	res.Intent = IntentEditInteraction
	if payload.HCPID == nil && payload.HCPName == "" {
		next.EditPayload = nil
		res.AssistantMessage = MsgEditNeedsHCP
		return next, nil
	}
	next.EditPayload = payload
	res.AssistantMessage = MsgEditCaptured
	return next, nil
}

func (p *Pipeline) logIntent(ctx context.Context, draft Draft, delta Delta, res *TurnResult) (Draft, error) {
	next, err := p.refine(ctx, draft, delta)
	if err != nil {
		return Draft{}, err
	}
	next.EditPayload = nil

	res.Intent = IntentLogInteraction
	if next.HasHCP() {
		res.AssistantMessage = MsgReadyToLog
	} else {
		res.AssistantMessage = MsgLogNeedsHCP
	}
	return next, nil
}

// refine is the shared merge, normalize and advise step of every branch.
func (p *Pipeline) refine(ctx context.Context, draft Draft, delta Delta) (Draft, error) {
	next := p.normalizer.Normalize(Merge(draft, delta))

	advice, err := p.advisor.Advise(ctx, next, nil)
	if err != nil {
		return Draft{}, fmt.Errorf("advise draft: %w", err)
	}
	next.Suggestions = advice.Suggestions
	next.Compliance = &advice.Compliance
	return next, nil
}

// newEditPayload prefers the HCP named in this turn over the one on the draft.
func newEditPayload(draft Draft, delta Delta) *EditPayload {
	payload := &EditPayload{FieldsToUpdate: map[string]any{}}

	switch {
	case delta.Fields.HCPID != nil && *delta.Fields.HCPID > 0:
		payload.HCPID = cloneUint(delta.Fields.HCPID)
	case draft.HCPID != nil && *draft.HCPID > 0:
		payload.HCPID = cloneUint(draft.HCPID)
	}

	switch {
	case delta.Fields.HCPName != nil && strings.TrimSpace(*delta.Fields.HCPName) != "":
		payload.HCPName = normalizeHCPName(*delta.Fields.HCPName)
	default:
		payload.HCPName = normalizeHCPName(draft.HCPName)
	}

	for k, v := range delta.FieldsToUpdate {
		payload.FieldsToUpdate[k] = v
	}
	return payload
}
