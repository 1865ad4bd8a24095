package implementation

import (
	"context"
	"errors"

	"hcp-crm-be/internal/entity"
	"hcp-crm-be/internal/mapper"
	"hcp-crm-be/internal/model"
	"hcp-crm-be/internal/repository/contract"
	"hcp-crm-be/internal/repository/specification"

	"gorm.io/gorm"
)

type InteractionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InteractionMapper
}

func NewInteractionRepository(db *gorm.DB) contract.InteractionRepository {
	return &InteractionRepositoryImpl{
		db:     db,
		mapper: mapper.NewInteractionMapper(),
	}
}

func (r *InteractionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InteractionRepositoryImpl) Create(ctx context.Context, interaction *entity.Interaction) error {
	m := r.mapper.ToModel(interaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*interaction = *r.mapper.ToEntity(m)
	return nil
}

func (r *InteractionRepositoryImpl) Update(ctx context.Context, interaction *entity.Interaction) error {
	m := r.mapper.ToModel(interaction)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*interaction = *r.mapper.ToEntity(m)
	return nil
}

func (r *InteractionRepositoryImpl) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	// Updates with a map writes zero values too (false, "").
	return r.db.WithContext(ctx).Model(&model.Interaction{}).Where("id = ?", id).Updates(fields).Error
}

func (r *InteractionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interaction, error) {
	var m model.Interaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InteractionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interaction, error) {
	var models []*model.Interaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *InteractionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Interaction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
