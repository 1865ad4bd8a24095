package unitofwork

import (
	"context"

	"hcp-crm-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	HCPRepository() contract.HCPRepository
	InteractionRepository() contract.InteractionRepository
	AgentTurnRepository() contract.AgentTurnRepository
}
