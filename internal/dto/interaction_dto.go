package dto

type InteractionResponse struct {
	ID                 uint   `json:"id"`
	HCPID              uint   `json:"hcp_id"`
	CreatedAt          string `json:"created_at"`
	InteractionType    string `json:"interaction_type"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	Attendees          string `json:"attendees"`
	TopicsDiscussed    string `json:"topics_discussed"`
	MaterialsShared    string `json:"materials_shared"`
	SamplesDistributed string `json:"samples_distributed"`
	ConsentRequired    bool   `json:"consent_required"`
	OccurredAt         string `json:"occurred_at"`
	Sentiment          string `json:"sentiment"`
	ProductsDiscussed  string `json:"products_discussed"`
	Summary            string `json:"summary"`
	Outcomes           string `json:"outcomes"`
	FollowUps          string `json:"follow_ups"`
}

type LogInteractionResponse struct {
	ToolUsed      string `json:"tool_used"`
	InteractionID uint   `json:"interaction_id"`
	HCPID         uint   `json:"hcp_id"`
	Message       string `json:"message"`
}

type EditLatestRequest struct {
	HCPID          *uint          `json:"hcp_id"`
	HCPName        string         `json:"hcp_name"`
	FieldsToUpdate map[string]any `json:"fields_to_update" validate:"required,min=1"`
}

type EditLatestResponse struct {
	ToolUsed      string         `json:"tool_used"`
	InteractionID uint           `json:"interaction_id"`
	HCPID         uint           `json:"hcp_id"`
	UpdatedFields map[string]any `json:"updated_fields"`
	Message       string         `json:"message"`
}

type HCPContextResponse struct {
	HCP                HCPResponse            `json:"hcp"`
	LatestInteractions []*InteractionResponse `json:"latest_interactions"`
}
