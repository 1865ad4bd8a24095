package entity

import (
	"time"

	"github.com/google/uuid"
)

// AgentTurn is the audit record of one chat turn.
type AgentTurn struct {
	ID               uuid.UUID
	SessionID        uuid.UUID
	Message          string
	Intent           string
	AssistantMessage string
	RawResponse      string
	ParsedDelta      map[string]any
	DraftSnapshot    map[string]any
	CreatedAt        time.Time
}
