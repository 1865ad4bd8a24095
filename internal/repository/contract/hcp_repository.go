package contract

import (
	"context"

	"hcp-crm-be/internal/entity"
	"hcp-crm-be/internal/repository/specification"
)

type HCPRepository interface {
	Create(ctx context.Context, hcp *entity.HCP) error
	Update(ctx context.Context, hcp *entity.HCP) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.HCP, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HCP, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
