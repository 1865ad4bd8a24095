package mapper

import (
	"hcp-crm-be/internal/entity"
	"hcp-crm-be/internal/model"
	"hcp-crm-be/pkg/agent"
)

type InteractionMapper struct{}

func NewInteractionMapper() *InteractionMapper {
	return &InteractionMapper{}
}

func (m *InteractionMapper) ToEntity(i *model.Interaction) *entity.Interaction {
	if i == nil {
		return nil
	}
	return &entity.Interaction{
		ID:                 i.ID,
		HCPID:              i.HCPID,
		InteractionType:    i.InteractionType,
		Date:               i.Date,
		Time:               i.Time,
		Attendees:          i.Attendees,
		TopicsDiscussed:    i.TopicsDiscussed,
		MaterialsShared:    i.MaterialsShared,
		SamplesDistributed: i.SamplesDistributed,
		ConsentRequired:    i.ConsentRequired,
		OccurredAt:         i.OccurredAt,
		Sentiment:          i.Sentiment,
		ProductsDiscussed:  i.ProductsDiscussed,
		Summary:            i.Summary,
		Outcomes:           i.Outcomes,
		FollowUps:          i.FollowUps,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}

func (m *InteractionMapper) ToModel(i *entity.Interaction) *model.Interaction {
	if i == nil {
		return nil
	}
	return &model.Interaction{
		ID:                 i.ID,
		HCPID:              i.HCPID,
		InteractionType:    i.InteractionType,
		Date:               i.Date,
		Time:               i.Time,
		Attendees:          i.Attendees,
		TopicsDiscussed:    i.TopicsDiscussed,
		MaterialsShared:    i.MaterialsShared,
		SamplesDistributed: i.SamplesDistributed,
		ConsentRequired:    i.ConsentRequired,
		OccurredAt:         i.OccurredAt,
		Sentiment:          i.Sentiment,
		ProductsDiscussed:  i.ProductsDiscussed,
		Summary:            i.Summary,
		Outcomes:           i.Outcomes,
		FollowUps:          i.FollowUps,
		CreatedAt:          i.CreatedAt,
		UpdatedAt:          i.UpdatedAt,
	}
}

func (m *InteractionMapper) ToEntities(items []*model.Interaction) []*entity.Interaction {
	entities := make([]*entity.Interaction, len(items))
	for i, item := range items {
		entities[i] = m.ToEntity(item)
	}
	return entities
}

// FromDraft copies the domain fields of a draft into a new interaction for hcpID.
// Bookkeeping fields are never read.
func (m *InteractionMapper) FromDraft(d agent.Draft, hcpID uint) *entity.Interaction {
	return &entity.Interaction{
		HCPID:              hcpID,
		InteractionType:    d.InteractionType,
		Date:               d.Date,
		Time:               d.Time,
		Attendees:          d.Attendees,
		TopicsDiscussed:    d.TopicsDiscussed,
		MaterialsShared:    d.MaterialsShared,
		SamplesDistributed: d.SamplesDistributed,
		ConsentRequired:    d.ConsentRequired,
		OccurredAt:         d.OccurredAt,
		Sentiment:          d.Sentiment,
		ProductsDiscussed:  d.ProductsDiscussed,
		Summary:            d.Summary,
		Outcomes:           d.Outcomes,
		FollowUps:          d.FollowUps,
	}
}

// ApplyToDraft overwrites the draft's domain fields with the stored values.
func (m *InteractionMapper) ApplyToDraft(d agent.Draft, i *entity.Interaction, hcp *entity.HCP) agent.Draft {
	out := d.Clone()
	if hcp != nil {
		id := hcp.ID
		out.HCPID = &id
		out.HCPName = hcp.Name
	}
	out.InteractionType = i.InteractionType
	out.Date = i.Date
	out.Time = i.Time
	out.Attendees = i.Attendees
	out.TopicsDiscussed = i.TopicsDiscussed
	out.MaterialsShared = i.MaterialsShared
	out.SamplesDistributed = i.SamplesDistributed
	out.ConsentRequired = i.ConsentRequired
	out.OccurredAt = i.OccurredAt
	out.Sentiment = i.Sentiment
	out.ProductsDiscussed = i.ProductsDiscussed
	out.Summary = i.Summary
	out.Outcomes = i.Outcomes
	out.FollowUps = i.FollowUps
	return out
}
