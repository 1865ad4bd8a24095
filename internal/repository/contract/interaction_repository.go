package contract

import (
	"context"

	"hcp-crm-be/internal/entity"
	"hcp-crm-be/internal/repository/specification"
)

type InteractionRepository interface {
	Create(ctx context.Context, interaction *entity.Interaction) error
	Update(ctx context.Context, interaction *entity.Interaction) error
	// UpdateFields patches the given columns only. Keys are column names.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
