package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hcp-crm-be/internal/dto"
	"hcp-crm-be/internal/entity"
	"hcp-crm-be/internal/mapper"
	"hcp-crm-be/internal/pkg/logger"
	"hcp-crm-be/internal/repository/contract"
	"hcp-crm-be/internal/repository/specification"
	"hcp-crm-be/internal/repository/unitofwork"
	"hcp-crm-be/pkg/agent"
	"hcp-crm-be/pkg/events"
)

const (
	interactionModule = "InteractionService"

	defaultInteractionType = "Meeting"
	defaultSentiment       = "neutral"
	hcpContextLimit        = 5

	ToolLogInteraction  = "LogInteraction"
	ToolEditInteraction = "EditInteraction"
)

type IInteractionService interface {
	// ResolveHCP looks up by id first, then by case-insensitive exact name.
	// It returns nil, nil when neither matches.
	ResolveHCP(ctx context.Context, id *uint, name string) (*entity.HCP, error)
	Log(ctx context.Context, draft agent.Draft) (*dto.LogInteractionResponse, error)
	EditLatest(ctx context.Context, id *uint, name string, fields map[string]any) (*dto.EditLatestResponse, error)
	HCPContext(ctx context.Context, id *uint, name string) (*dto.HCPContextResponse, error)
	ListForHCP(ctx context.Context, hcpID uint) ([]*dto.InteractionResponse, error)
	Get(ctx context.Context, id uint) (*dto.InteractionResponse, error)
}

type interactionService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	mapper           *mapper.InteractionMapper
	logger           logger.ILogger
}

func NewInteractionService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IInteractionService {
	return &interactionService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		mapper:           mapper.NewInteractionMapper(),
		logger:           log,
	}
}

func (s *interactionService) ResolveHCP(ctx context.Context, id *uint, name string) (*entity.HCP, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return resolveHCP(ctx, uow.HCPRepository(), id, name)
}

func resolveHCP(ctx context.Context, repo contract.HCPRepository, id *uint, name string) (*entity.HCP, error) {
	if id != nil && *id > 0 {
		hcp, err := repo.FindOne(ctx, specification.ByID{ID: *id})
		if err != nil || hcp != nil {
			return hcp, err
		}
	}
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	return repo.FindOne(ctx, specification.ByNameInsensitive{Name: name}, specification.OrderBy{Field: "id"})
}

func (s *interactionService) Log(ctx context.Context, draft agent.Draft) (*dto.LogInteractionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	name := strings.TrimSpace(draft.HCPName)
	hcp, err := resolveHCP(ctx, uow.HCPRepository(), draft.HCPID, name)
	if err != nil {
		return nil, err
	}
	if hcp == nil && name != "" {
		hcp = &entity.HCP{Name: name}
		if err := uow.HCPRepository().Create(ctx, hcp); err != nil {
			return nil, fmt.Errorf("create hcp: %w", err)
		}
		s.logger.Info(interactionModule, "Created HCP from draft", map[string]interface{}{
			"hcp_id": hcp.ID,
			"name":   hcp.Name,
		})
	}
	if hcp == nil {
		return nil, ErrHCPRequired
	}

	interaction := s.mapper.FromDraft(draft, hcp.ID)
	if strings.TrimSpace(interaction.InteractionType) == "" {
		interaction.InteractionType = defaultInteractionType
	}
	if strings.TrimSpace(interaction.Sentiment) == "" {
		interaction.Sentiment = defaultSentiment
	}
	if err := uow.InteractionRepository().Create(ctx, interaction); err != nil {
		return nil, fmt.Errorf("create interaction: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewInteractionLogged(interaction.ID, hcp.ID, hcp.Name))

	return &dto.LogInteractionResponse{
		ToolUsed:      ToolLogInteraction,
		InteractionID: interaction.ID,
		HCPID:         hcp.ID,
		Message:       "Logged interaction successfully.",
	}, nil
}

func (s *interactionService) EditLatest(ctx context.Context, id *uint, name string, fields map[string]any) (*dto.EditLatestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	hcp, err := resolveHCP(ctx, uow.HCPRepository(), id, name)
	if err != nil {
		return nil, err
	}
	if hcp == nil {
		return nil, ErrHCPNotFound
	}

	target, err := uow.InteractionRepository().FindOne(ctx,
		specification.ByHCPID{HCPID: hcp.ID},
		specification.LatestFirst{},
	)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNoInteractions
	}

	updates := agent.CoerceEditFields(fields)
	if len(updates) > 0 {
		if err := uow.InteractionRepository().UpdateFields(ctx, target.ID, updates); err != nil {
			return nil, fmt.Errorf("update interaction %d: %w", target.ID, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		keys := make([]string, 0, len(updates))
		for k := range updates {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		s.publish(ctx, events.NewInteractionEdited(target.ID, hcp.ID, keys))
	}

	return &dto.EditLatestResponse{
		ToolUsed:      ToolEditInteraction,
		InteractionID: target.ID,
		HCPID:         hcp.ID,
		UpdatedFields: updates,
		Message:       fmt.Sprintf("Updated latest interaction for %s.", hcp.Name),
	}, nil
}

func (s *interactionService) HCPContext(ctx context.Context, id *uint, name string) (*dto.HCPContextResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	hcp, err := resolveHCP(ctx, uow.HCPRepository(), id, name)
	if err != nil {
		return nil, err
	}
	if hcp == nil {
		return nil, ErrHCPNotFound
	}

	latest, err := uow.InteractionRepository().FindAll(ctx,
		specification.ByHCPID{HCPID: hcp.ID},
		specification.LatestFirst{},
		specification.Pagination{Limit: hcpContextLimit},
	)
	if err != nil {
		return nil, err
	}

	return &dto.HCPContextResponse{
		HCP:                *toHCPResponse(hcp),
		LatestInteractions: toInteractionResponses(latest),
	}, nil
}

func (s *interactionService) ListForHCP(ctx context.Context, hcpID uint) ([]*dto.InteractionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	hcp, err := uow.HCPRepository().FindOne(ctx, specification.ByID{ID: hcpID})
	if err != nil {
		return nil, err
	}
	if hcp == nil {
		return nil, ErrHCPNotFound
	}

	items, err := uow.InteractionRepository().FindAll(ctx,
		specification.ByHCPID{HCPID: hcpID},
		specification.OrderBy{Field: "id", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return toInteractionResponses(items), nil
}

func (s *interactionService) Get(ctx context.Context, id uint) (*dto.InteractionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	item, err := uow.InteractionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInteractionNotFound
	}
	return toInteractionResponse(item), nil
}

// publish is best effort: the interaction is already committed.
func (s *interactionService) publish(ctx context.Context, event events.Event) {
	if s.publisherService == nil {
		return
	}
	if err := s.publisherService.PublishEvent(ctx, event); err != nil {
		s.logger.Warn(interactionModule, "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func toInteractionResponse(i *entity.Interaction) *dto.InteractionResponse {
	return &dto.InteractionResponse{
		ID:                 i.ID,
		HCPID:              i.HCPID,
		CreatedAt:          i.CreatedAt.Format(time.RFC3339),
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
	}
}

func toInteractionResponses(items []*entity.Interaction) []*dto.InteractionResponse {
	result := make([]*dto.InteractionResponse, 0, len(items))
	for _, i := range items {
		result = append(result, toInteractionResponse(i))
	}
	return result
}
