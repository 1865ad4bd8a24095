package events

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	InteractionLogged = "interaction.logged"
	InteractionEdited = "interaction.edited"
)

func NewInteractionLogged(interactionID, hcpID uint, hcpName string) BaseEvent {
	return BaseEvent{
		Type: InteractionLogged,
		Data: map[string]interface{}{
			"interaction_id": interactionID,
			"hcp_id":         hcpID,
			"hcp_name":       hcpName,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func NewInteractionEdited(interactionID, hcpID uint, fields []string) BaseEvent {
	return BaseEvent{
		Type: InteractionEdited,
		Data: map[string]interface{}{
			"interaction_id": interactionID,
			"hcp_id":         hcpID,
			"fields":         fields,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// Encode renders an event as the JSON envelope carried on the internal bus.
func Encode(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{
		Type:       e.EventType(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	})
}

func Decode(data []byte) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" {
		return BaseEvent{}, fmt.Errorf("decode event: missing type")
	}
	return e, nil
}
