package contract

import (
	"context"

	"hcp-crm-be/internal/entity"
	"hcp-crm-be/internal/repository/specification"
)

type AgentTurnRepository interface {
	Create(ctx context.Context, turn *entity.AgentTurn) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AgentTurn, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AgentTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
