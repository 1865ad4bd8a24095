package contract

import (
	"context"

	"hcp-crm-be/pkg/agent"
)

// DraftRepository keeps the live draft of each chat session between turns.
// Get reports false when the session is unknown or expired.
type DraftRepository interface {
	Save(ctx context.Context, sessionID string, draft agent.Draft) error
	Get(ctx context.Context, sessionID string) (agent.Draft, bool, error)
	Delete(ctx context.Context, sessionID string) error
}
