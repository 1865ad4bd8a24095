package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodAdvice = `{"_ai_suggestions":["Send the cardiac study","Book a follow-up call","Share dosing card"],"_compliance":{"status":"ok","issues":[]}}`

func newTestPipeline(c *scriptedCompleter) *Pipeline {
	return NewPipeline(c, NewAdvisor(c, nil), fixedNormalizer(), nil)
}

func TestPipeline_RunTurn(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		draft       Draft
		extract     string
		wantIntent  IntentTag
		wantAction  Action
		wantMessage string
		wantStates  []State
		check       func(t *testing.T, res *TurnResult)
	}{
		{
			name:        "new meeting note",
			message:     "Met Dr. Asha Sharma today, discussed cardiac drug, she seemed positive",
			extract:     `{"action":"draft","hcp_name":"Asha Sharma","date":"today","topics_discussed":"cardiac drug","sentiment":"positive"}`,
			wantIntent:  IntentDraftUpdate,
			wantAction:  ActionDraft,
			wantMessage: MsgDraftUpdated,
			wantStates:  []State{StateExtract, StateDraftUpdate, StateDone},
			check: func(t *testing.T, res *TurnResult) {
				assert.Equal(t, "Dr. Asha Sharma", res.Draft.HCPName)
				assert.Equal(t, fixedToday, res.Draft.Date)
				assert.Equal(t, "positive", res.Draft.Sentiment)
				assert.Len(t, res.Draft.Suggestions, 3)
				require.NotNil(t, res.Draft.Compliance)
				assert.Equal(t, StatusOK, res.Draft.Compliance.Status)
			},
		},
		{
			name:        "draft without hcp asks for a name",
			message:     "discussed samples",
			extract:     "```json\n{\"samples_distributed\":\"2 boxes\"}\n```",
			wantIntent:  IntentDraftUpdate,
			wantAction:  ActionDraft,
			wantMessage: MsgDraftNeedsHCP,
			wantStates:  []State{StateExtract, StateDraftUpdate, StateDone},
			check: func(t *testing.T, res *TurnResult) {
				assert.Equal(t, "2 boxes", res.Draft.SamplesDistributed)
				assert.Equal(t, "strict", res.Extraction.Strategy)
			},
		},
		{
			name:        "correction becomes an edit payload",
			message:     "actually change the date to tomorrow",
			draft:       Draft{HCPName: "Dr. Asha Sharma", Date: "2024-01-01"},
			extract:     `{"action":"edit","fields_to_update":{"date":"2024-01-02"}}`,
			wantIntent:  IntentEditInteraction,
			wantAction:  ActionEdit,
			wantMessage: MsgEditCaptured,
			wantStates:  []State{StateExtract, StateEditIntent, StateDone},
			check: func(t *testing.T, res *TurnResult) {
				require.NotNil(t, res.Draft.EditPayload)
				assert.Equal(t, map[string]any{"date": "2024-01-02"}, res.Draft.EditPayload.FieldsToUpdate)
				assert.Equal(t, "Dr. Asha Sharma", res.Draft.EditPayload.HCPName)
				assert.Nil(t, res.Draft.EditPayload.HCPID)
				assert.Equal(t, "2024-01-01", res.Draft.Date)
			},
		},
		{
			name:        "edit prefers the hcp named in this turn",
			message:     "sorry, for Dr Mehta the sentiment was negative",
			draft:       Draft{HCPID: uintPtr(1), HCPName: "Dr. Asha Sharma"},
			extract:     `{"action":"edit","hcp_id":2,"hcp_name":"vikram mehta","fields_to_update":{"sentiment":"negative"}}`,
			wantIntent:  IntentEditInteraction,
			wantAction:  ActionEdit,
			wantMessage: MsgEditCaptured,
			wantStates:  []State{StateExtract, StateEditIntent, StateDone},
			check: func(t *testing.T, res *TurnResult) {
				require.NotNil(t, res.Draft.EditPayload)
				assert.Equal(t, uint(2), *res.Draft.EditPayload.HCPID)
				assert.Equal(t, "Dr. vikram mehta", res.Draft.EditPayload.HCPName)
			},
		},
		{
			name:        "edit without hcp",
			message:     "change the time to 5pm",
			extract:     `{"action":"edit","fields_to_update":{"time":"17:00"}}`,
			wantIntent:  IntentEditInteraction,
			wantAction:  ActionEdit,
			wantMessage: MsgEditNeedsHCP,
			wantStates:  []State{StateExtract, StateEditIntent, StateDone},
			check: func(t *testing.T, res *TurnResult) {
				assert.Nil(t, res.Draft.EditPayload)
			},
		},
		{
			name:        "log request",
			message:     "log it",
			draft:       Draft{HCPName: "Dr. Neha Verma", Date: "2024-03-10"},
			extract:     `Sure: {"action":"log"}`,
			wantIntent:  IntentLogInteraction,
			wantAction:  ActionLog,
			wantMessage: MsgReadyToLog,
			wantStates:  []State{StateExtract, StateLogIntent, StateDone},
			check: func(t *testing.T, res *TurnResult) {
				assert.Equal(t, "2024-03-10", res.Draft.Date)
				assert.Equal(t, "first_balanced", res.Extraction.Strategy)
			},
		},
		{
			name:        "log without hcp",
			message:     "save",
			extract:     `{"action":"log"}`,
			wantIntent:  IntentLogInteraction,
			wantAction:  ActionLog,
			wantMessage: MsgLogNeedsHCP,
			wantStates:  []State{StateExtract, StateLogIntent, StateDone},
		},
		{
			name:        "unparseable model output keeps the draft",
			message:     "hmm",
			draft:       Draft{HCPName: "Dr. Neha Verma", Date: "2024-03-10", Summary: "Intro call"},
			extract:     "I am not sure what you mean.",
			wantIntent:  IntentDraftUpdate,
			wantAction:  ActionDraft,
			wantMessage: MsgDraftUpdated,
			wantStates:  []State{StateExtract, StateDraftUpdate, StateDone},
			check: func(t *testing.T, res *TurnResult) {
				assert.Equal(t, "Intro call", res.Draft.Summary)
				assert.Empty(t, res.Extraction.Parsed)
				assert.Equal(t, "", res.Extraction.Strategy)
			},
		},
		{
			name:        "stale edit payload is dropped on a draft turn",
			message:     "she also asked for samples",
			draft:       Draft{HCPName: "Dr. Asha Sharma", EditPayload: &EditPayload{HCPName: "Dr. Asha Sharma"}},
			extract:     `{"samples_distributed":"Starter pack"}`,
			wantIntent:  IntentDraftUpdate,
			wantAction:  ActionDraft,
			wantMessage: MsgDraftUpdated,
			wantStates:  []State{StateExtract, StateDraftUpdate, StateDone},
			check: func(t *testing.T, res *TurnResult) {
				assert.Nil(t, res.Draft.EditPayload)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &scriptedCompleter{extract: tt.extract, advise: goodAdvice}
			before := tt.draft.Clone()

			res, err := newTestPipeline(completer).RunTurn(context.Background(), tt.message, tt.draft)
			require.NoError(t, err)

			assert.Equal(t, tt.wantIntent, res.Intent)
			assert.Equal(t, tt.wantAction, res.Action)
			assert.Equal(t, tt.wantMessage, res.AssistantMessage)
			assert.Equal(t, tt.wantStates, res.States)
			assert.Equal(t, strings.TrimSpace(tt.extract), res.Extraction.Raw)
			assert.NotNil(t, res.Extraction.Parsed)
			assert.Equal(t, before, tt.draft, "input draft must not change")

			assert.Len(t, completer.callsFor(ExtractSystemPrompt), 1)
			assert.Len(t, completer.callsFor(AdvisorSystemPrompt), 1)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestPipeline_ExtractionPrompt(t *testing.T) {
	completer := &scriptedCompleter{extract: `{}`, advise: goodAdvice}
	draft := Draft{
		HCPName:     "Dr. Asha Sharma",
		Suggestions: []string{"old suggestion"},
		Compliance:  &Compliance{Status: StatusOK},
	}

	_, err := newTestPipeline(completer).RunTurn(context.Background(), "met her at 10:30", draft)
	require.NoError(t, err)

	calls := completer.callsFor(ExtractSystemPrompt)
	require.Len(t, calls, 1)
	user := calls[0].user
	assert.True(t, strings.HasPrefix(user, "User message:\nmet her at 10:30\n\nCurrent draft JSON:\n"))
	assert.True(t, strings.HasSuffix(user, "Return ONLY JSON."))
	assert.Contains(t, user, `"hcp_name":"Dr. Asha Sharma"`)
	assert.NotContains(t, user, "_ai_suggestions")
	assert.NotContains(t, user, "_compliance")
}

func TestPipeline_ExtractionErrorPropagates(t *testing.T) {
	upstream := errors.New("rate limited")
	completer := &scriptedCompleter{extractErr: upstream}
	draft := Draft{HCPName: "Dr. Asha Sharma"}

	res, err := newTestPipeline(completer).RunTurn(context.Background(), "hello", draft)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, upstream)
	assert.Empty(t, completer.callsFor(AdvisorSystemPrompt))
}

func TestPipeline_AdvisorFailureDoesNotFailTurn(t *testing.T) {
	completer := &scriptedCompleter{
		extract:   `{"hcp_name":"Asha Sharma","products_discussed":"DrugX","sentiment":"neutral","used_voice_note":true}`,
		adviseErr: errors.New("timeout"),
	}

	res, err := newTestPipeline(completer).RunTurn(context.Background(), "voice note", Draft{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Share brochure/clinical highlights for discussed products",
		"Address objections and share evidence/clinical study summary",
		"Schedule next follow-up in 2 weeks",
	}, res.Draft.Suggestions)
	require.NotNil(t, res.Draft.Compliance)
	assert.Equal(t, StatusReview, res.Draft.Compliance.Status)
	assert.Equal(t, []string{ConsentIssue}, res.Draft.Compliance.Issues)
}

func TestPipeline_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(&scriptedCompleter{extract: `{}`}).RunTurn(ctx, "hello", Draft{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_ConsecutiveTurns(t *testing.T) {
	completer := &scriptedCompleter{advise: goodAdvice}
	p := newTestPipeline(completer)

	completer.extract = `{"hcp_name":"Asha Sharma","date":"today","sentiment":"positive"}`
	first, err := p.RunTurn(context.Background(), "Met Asha today", Draft{})
	require.NoError(t, err)

	completer.extract = `{"materials_shared":"Brochure","hcp_name":""}`
	second, err := p.RunTurn(context.Background(), "gave her a brochure", first.Draft)
	require.NoError(t, err)

	assert.Equal(t, "Dr. Asha Sharma", second.Draft.HCPName)
	assert.Equal(t, fixedToday, second.Draft.Date)
	assert.Equal(t, "positive", second.Draft.Sentiment)
	assert.Equal(t, "Brochure", second.Draft.MaterialsShared)
}
