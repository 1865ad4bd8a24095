package implementation

import (
	"context"
	"errors"

	"hcp-crm-be/internal/entity"
	"hcp-crm-be/internal/mapper"
	"hcp-crm-be/internal/model"
	"hcp-crm-be/internal/repository/contract"
	"hcp-crm-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AgentTurnRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AgentTurnMapper
}

func NewAgentTurnRepository(db *gorm.DB) contract.AgentTurnRepository {
	return &AgentTurnRepositoryImpl{
		db:     db,
		mapper: mapper.NewAgentTurnMapper(),
	}
}

func (r *AgentTurnRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AgentTurnRepositoryImpl) Create(ctx context.Context, turn *entity.AgentTurn) error {
	if turn.ID == uuid.Nil {
		turn.ID = uuid.New()
	}
	m := r.mapper.ToModel(turn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*turn = *r.mapper.ToEntity(m)
	return nil
}

func (r *AgentTurnRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AgentTurn, error) {
	var m model.AgentTurn
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AgentTurnRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AgentTurn, error) {
	var models []*model.AgentTurn
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AgentTurnRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AgentTurn{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
