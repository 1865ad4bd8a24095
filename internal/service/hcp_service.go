package service

import (
	"context"

	"hcp-crm-be/internal/dto"
	"hcp-crm-be/internal/entity"
	"hcp-crm-be/internal/pkg/logger"
	"hcp-crm-be/internal/repository/specification"
	"hcp-crm-be/internal/repository/unitofwork"
)

// DemoHCPs are inserted into an empty directory.
var DemoHCPs = []entity.HCP{
	{Name: "Dr. Asha Sharma", Specialty: "Cardiology", City: "Delhi"},
	{Name: "Dr. Vikram Mehta", Specialty: "Diabetology", City: "Mumbai"},
	{Name: "Dr. Neha Verma", Specialty: "Dermatology", City: "Bengaluru"},
}

type IHCPService interface {
	List(ctx context.Context) ([]*dto.HCPResponse, error)
	// Seed inserts the demo HCPs when the table is empty and reports how many were created.
	Seed(ctx context.Context) (int, error)
}

type hcpService struct {
	uowFactory unitofwork.RepositoryFactory
	seedDemo   bool
	logger     logger.ILogger
}

func NewHCPService(uowFactory unitofwork.RepositoryFactory, seedDemo bool, log logger.ILogger) IHCPService {
	return &hcpService{
		uowFactory: uowFactory,
		seedDemo:   seedDemo,
		logger:     log,
	}
}

func (s *hcpService) List(ctx context.Context) ([]*dto.HCPResponse, error) {
	if s.seedDemo {
		if _, err := s.Seed(ctx); err != nil {
			return nil, err
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	hcps, err := uow.HCPRepository().FindAll(ctx, specification.OrderBy{Field: "name"})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.HCPResponse, 0, len(hcps))
	for _, h := range hcps {
		result = append(result, toHCPResponse(h))
	}
	return result, nil
}

func (s *hcpService) Seed(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer uow.Rollback()

	count, err := uow.HCPRepository().Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, demo := range DemoHCPs {
		h := demo
		if err := uow.HCPRepository().Create(ctx, &h); err != nil {
			return 0, err
		}
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("HCPService", "Seeded demo HCPs", map[string]interface{}{"count": len(DemoHCPs)})
	return len(DemoHCPs), nil
}

func toHCPResponse(h *entity.HCP) *dto.HCPResponse {
	return &dto.HCPResponse{
		ID:        h.ID,
		Name:      h.Name,
		Specialty: h.Specialty,
		City:      h.City,
	}
}
