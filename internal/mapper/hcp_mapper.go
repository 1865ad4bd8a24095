package mapper

import (
	"hcp-crm-be/internal/entity"
	"hcp-crm-be/internal/model"
)

type HCPMapper struct{}

func NewHCPMapper() *HCPMapper {
	return &HCPMapper{}
}

func (m *HCPMapper) ToEntity(h *model.HCP) *entity.HCP {
	if h == nil {
		return nil
	}
	return &entity.HCP{
		ID:        h.ID,
		Name:      h.Name,
		Specialty: h.Specialty,
		City:      h.City,
		CreatedAt: h.CreatedAt,
	}
}

func (m *HCPMapper) ToModel(h *entity.HCP) *model.HCP {
	if h == nil {
		return nil
	}
	return &model.HCP{
		ID:        h.ID,
		Name:      h.Name,
		Specialty: h.Specialty,
		City:      h.City,
		CreatedAt: h.CreatedAt,
	}
}

func (m *HCPMapper) ToEntities(hcps []*model.HCP) []*entity.HCP {
	entities := make([]*entity.HCP, len(hcps))
	for i, h := range hcps {
		entities[i] = m.ToEntity(h)
	}
	return entities
}
