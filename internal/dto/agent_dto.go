package dto

import (
	"time"

	"hcp-crm-be/pkg/agent"

	"github.com/google/uuid"
)

type AgentChatRequest struct {
	// Mode is accepted for client compatibility ("chat" or "form") and does not change the turn.
	Mode      string       `json:"mode"`
	Message   string       `json:"message" validate:"required,max=4000"`
	Draft     *agent.Draft `json:"draft"`
	SessionID string       `json:"session_id" validate:"omitempty,uuid"`
}

type AgentChatResponse struct {
	AssistantMessage string      `json:"assistant_message"`
	UpdatedDraft     agent.Draft `json:"updated_draft"`
	ToolUsed         string      `json:"tool_used"`
	SessionID        string      `json:"session_id"`
}

type SuggestRequest struct {
	Draft   agent.Draft    `json:"draft"`
	Context map[string]any `json:"context"`
}

type SuggestResponse struct {
	Suggestions []string `json:"_ai_suggestions"`
}

type ComplianceRequest struct {
	Draft agent.Draft `json:"draft"`
}

type ComplianceResponse struct {
	Compliance agent.Compliance `json:"_compliance"`
}

type AgentTurnResponse struct {
	ID               uuid.UUID      `json:"id"`
	SessionID        uuid.UUID      `json:"session_id"`
	Message          string         `json:"message"`
	Intent           string         `json:"intent"`
	AssistantMessage string         `json:"assistant_message"`
	ParsedDelta      map[string]any `json:"parsed_delta"`
	DraftSnapshot    map[string]any `json:"draft_snapshot"`
	CreatedAt        time.Time      `json:"created_at"`
}
