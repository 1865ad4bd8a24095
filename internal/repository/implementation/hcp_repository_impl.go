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

type HCPRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HCPMapper
}

func NewHCPRepository(db *gorm.DB) contract.HCPRepository {
	return &HCPRepositoryImpl{
		db:     db,
		mapper: mapper.NewHCPMapper(),
	}
}

func (r *HCPRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *HCPRepositoryImpl) Create(ctx context.Context, hcp *entity.HCP) error {
	m := r.mapper.ToModel(hcp)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*hcp = *r.mapper.ToEntity(m)
	return nil
}

func (r *HCPRepositoryImpl) Update(ctx context.Context, hcp *entity.HCP) error {
	m := r.mapper.ToModel(hcp)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*hcp = *r.mapper.ToEntity(m)
	return nil
}

func (r *HCPRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.HCP, error) {
	var m model.HCP
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *HCPRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HCP, error) {
	var models []*model.HCP
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *HCPRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.HCP{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
