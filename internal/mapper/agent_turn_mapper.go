package mapper

import (
	"encoding/json"

	"hcp-crm-be/internal/entity"
	"hcp-crm-be/internal/model"

	"gorm.io/datatypes"
)

type AgentTurnMapper struct{}

func NewAgentTurnMapper() *AgentTurnMapper {
	return &AgentTurnMapper{}
}

func (m *AgentTurnMapper) ToEntity(t *model.AgentTurn) *entity.AgentTurn {
	if t == nil {
		return nil
	}
	return &entity.AgentTurn{
		ID:               t.ID,
		SessionID:        t.SessionID,
		Message:          t.Message,
		Intent:           t.Intent,
		AssistantMessage: t.AssistantMessage,
		RawResponse:      t.RawResponse,
		ParsedDelta:      decodeJSON(t.ParsedDelta),
		DraftSnapshot:    decodeJSON(t.DraftSnapshot),
		CreatedAt:        t.CreatedAt,
	}
}

func (m *AgentTurnMapper) ToModel(t *entity.AgentTurn) *model.AgentTurn {
	if t == nil {
		return nil
	}
	return &model.AgentTurn{
		ID:               t.ID,
		SessionID:        t.SessionID,
		Message:          t.Message,
		Intent:           t.Intent,
		AssistantMessage: t.AssistantMessage,
		RawResponse:      t.RawResponse,
		ParsedDelta:      encodeJSON(t.ParsedDelta),
		DraftSnapshot:    encodeJSON(t.DraftSnapshot),
		CreatedAt:        t.CreatedAt,
	}
}

func (m *AgentTurnMapper) ToEntities(turns []*model.AgentTurn) []*entity.AgentTurn {
	entities := make([]*entity.AgentTurn, len(turns))
	for i, t := range turns {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func encodeJSON(v map[string]any) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("{}")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}

func decodeJSON(raw datatypes.JSON) map[string]any {
	out := map[string]any{}
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}
