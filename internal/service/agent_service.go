package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hcp-crm-be/internal/dto"
	"hcp-crm-be/internal/entity"
	"hcp-crm-be/internal/mapper"
	"hcp-crm-be/internal/pkg/logger"
	"hcp-crm-be/internal/repository/contract"
	"hcp-crm-be/internal/repository/specification"
	"hcp-crm-be/internal/repository/unitofwork"
	"hcp-crm-be/pkg/agent"

	"github.com/google/uuid"
)

const agentModule = "AgentService"

type IAgentService interface {
	Chat(ctx context.Context, req *dto.AgentChatRequest) (*dto.AgentChatResponse, error)
	Suggest(ctx context.Context, req *dto.SuggestRequest) (*dto.SuggestResponse, error)
	Compliance(ctx context.Context, req *dto.ComplianceRequest) (*dto.ComplianceResponse, error)
	History(ctx context.Context, sessionID string) ([]*dto.AgentTurnResponse, error)
}

type agentService struct {
	uowFactory         unitofwork.RepositoryFactory
	pipeline           *agent.Pipeline
	advisor            *agent.Advisor
	interactionService IInteractionService
	drafts             contract.DraftRepository
	mapper             *mapper.InteractionMapper
	logger             logger.ILogger
}

func NewAgentService(
	uowFactory unitofwork.RepositoryFactory,
	pipeline *agent.Pipeline,
	advisor *agent.Advisor,
	interactionService IInteractionService,
	drafts contract.DraftRepository,
	log logger.ILogger,
) IAgentService {
	return &agentService{
		uowFactory:         uowFactory,
		pipeline:           pipeline,
		advisor:            advisor,
		interactionService: interactionService,
		drafts:             drafts,
		mapper:             mapper.NewInteractionMapper(),
		logger:             log,
	}
}

func (s *agentService) Chat(ctx context.Context, req *dto.AgentChatRequest) (*dto.AgentChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	sessionID, err := parseSessionID(req.SessionID)
	if err != nil {
		return nil, err
	}

	draft, err := s.loadDraft(ctx, sessionID, req.Draft)
	if err != nil {
		return nil, err
	}

	turn, err := s.pipeline.RunTurn(ctx, message, draft)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Error(agentModule, "Turn failed", map[string]interface{}{
			"session_id": sessionID.String(),
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}

	updated := turn.Draft
	assistantMessage := turn.AssistantMessage
	if turn.Intent == agent.IntentEditInteraction && updated.EditPayload != nil {
		assistantMessage, updated, err = s.applyEdit(ctx, updated)
		if err != nil {
			return nil, err
		}
	}
	updated.EditPayload = nil

	if err := s.drafts.Save(ctx, sessionID.String(), updated); err != nil {
		s.logger.Warn(agentModule, "Failed to store draft", map[string]interface{}{
			"session_id": sessionID.String(),
			"error":      err.Error(),
		})
	}
	s.recordTurn(ctx, sessionID, message, turn, assistantMessage, updated)

	s.logger.Info(agentModule, "Turn completed", map[string]interface{}{
		"session_id": sessionID.String(),
		"tool_used":  string(turn.Intent),
		"states":     turn.States,
	})

	return &dto.AgentChatResponse{
		AssistantMessage: assistantMessage,
		UpdatedDraft:     updated,
		ToolUsed:         string(turn.Intent),
		SessionID:        sessionID.String(),
	}, nil
}

// applyEdit patches the HCP's latest stored interaction and reloads the
// draft's domain fields from it. User-level failures become the reply.
func (s *agentService) applyEdit(ctx context.Context, draft agent.Draft) (string, agent.Draft, error) {
	payload := draft.EditPayload
	var reply string
	var hcpID *uint

	res, err := s.interactionService.EditLatest(ctx, payload.HCPID, payload.HCPName, payload.FieldsToUpdate)
	switch {
	case err == nil:
		reply = res.Message
		id := res.InteractionID
		draft.LastEditedInteractionID = &id
		hcp := res.HCPID
		hcpID = &hcp
	default:
		msg, ok := EditFailureMessage(err)
		if !ok {
			return "", draft, err
		}
		reply = msg
		hcpID = draft.HCPID
	}

	refreshed, err := s.refreshFromLatest(ctx, draft, hcpID)
	if err != nil {
		return "", draft, err
	}
	return reply, refreshed, nil
}

func (s *agentService) refreshFromLatest(ctx context.Context, draft agent.Draft, hcpID *uint) (agent.Draft, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var name string
	if hcpID == nil || *hcpID == 0 {
		name = draft.HCPName
	}
	hcp, err := resolveHCP(ctx, uow.HCPRepository(), hcpID, name)
	if err != nil || hcp == nil {
		return draft, err
	}

	latest, err := uow.InteractionRepository().FindOne(ctx,
		specification.ByHCPID{HCPID: hcp.ID},
		specification.LatestFirst{},
	)
	if err != nil || latest == nil {
		return draft, err
	}
	// Identity stays as the user stated it; only the record fields are reloaded.
	return s.mapper.ApplyToDraft(draft, latest, nil), nil
}

func (s *agentService) loadDraft(ctx context.Context, sessionID uuid.UUID, requested *agent.Draft) (agent.Draft, error) {
	if requested != nil {
		return requested.Clone(), nil
	}
	stored, found, err := s.drafts.Get(ctx, sessionID.String())
	if err != nil {
		s.logger.Warn(agentModule, "Failed to load stored draft, starting empty", map[string]interface{}{
			"session_id": sessionID.String(),
			"error":      err.Error(),
		})
		return agent.Draft{}, nil
	}
	if !found {
		return agent.Draft{}, nil
	}
	return stored, nil
}

func (s *agentService) recordTurn(ctx context.Context, sessionID uuid.UUID, message string, turn *agent.TurnResult, reply string, draft agent.Draft) {
	record := &entity.AgentTurn{
		SessionID:        sessionID,
		Message:          message,
		Intent:           string(turn.Intent),
		AssistantMessage: reply,
		RawResponse:      turn.Extraction.Raw,
		ParsedDelta:      turn.Extraction.Parsed,
		DraftSnapshot:    domainSnapshot(draft),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AgentTurnRepository().Create(ctx, record); err != nil {
		s.logger.Warn(agentModule, "Failed to record turn", map[string]interface{}{
			"session_id": sessionID.String(),
			"error":      err.Error(),
		})
	}
}

func (s *agentService) Suggest(ctx context.Context, req *dto.SuggestRequest) (*dto.SuggestResponse, error) {
	advice, err := s.advisor.Advise(ctx, req.Draft, req.Context)
	if err != nil {
		return nil, err
	}
	return &dto.SuggestResponse{Suggestions: advice.Suggestions}, nil
}

func (s *agentService) Compliance(ctx context.Context, req *dto.ComplianceRequest) (*dto.ComplianceResponse, error) {
	advice, err := s.advisor.Advise(ctx, req.Draft, nil)
	if err != nil {
		return nil, err
	}
	return &dto.ComplianceResponse{Compliance: advice.Compliance}, nil
}

func (s *agentService) History(ctx context.Context, sessionID string) ([]*dto.AgentTurnResponse, error) {
	id, err := uuid.Parse(strings.TrimSpace(sessionID))
	if err != nil {
		return nil, ErrInvalidSessionID
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.AgentTurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: id},
		specification.OldestFirst{},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.AgentTurnResponse, 0, len(turns))
	for _, t := range turns {
		result = append(result, &dto.AgentTurnResponse{
			ID:               t.ID,
			SessionID:        t.SessionID,
			Message:          t.Message,
			Intent:           t.Intent,
			AssistantMessage: t.AssistantMessage,
			ParsedDelta:      t.ParsedDelta,
			DraftSnapshot:    t.DraftSnapshot,
			CreatedAt:        t.CreatedAt,
		})
	}
	return result, nil
}

// parseSessionID returns a fresh id for an empty value.
func parseSessionID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidSessionID, err)
	}
	return id, nil
}

func domainSnapshot(d agent.Draft) map[string]any {
	out := map[string]any{}
	_ = json.Unmarshal([]byte(d.DomainJSON()), &out)
	return out
}
