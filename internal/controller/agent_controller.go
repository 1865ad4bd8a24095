package controller

import (
	"strconv"
	"strings"

	"hcp-crm-be/internal/dto"
	"hcp-crm-be/internal/pkg/serverutils"
	"hcp-crm-be/internal/service"
	"hcp-crm-be/pkg/agent"

	"github.com/gofiber/fiber/v2"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	LogInteraction(ctx *fiber.Ctx) error
	EditLatest(ctx *fiber.Ctx) error
	HCPContext(ctx *fiber.Ctx) error
	FollowupSuggest(ctx *fiber.Ctx) error
	ComplianceCheck(ctx *fiber.Ctx) error
}

type agentController struct {
	agentService       service.IAgentService
	interactionService service.IInteractionService
}

func NewAgentController(agentService service.IAgentService, interactionService service.IInteractionService) IAgentController {
	return &agentController{
		agentService:       agentService,
		interactionService: interactionService,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agent")
	h.Post("/chat", c.Chat)
	h.Get("/sessions/:id/turns", c.History)

	tools := h.Group("/tools")
	tools.Post("/log", c.LogInteraction)
	tools.Post("/edit-latest", c.EditLatest)
	tools.Get("/hcp-context", c.HCPContext)
	tools.Post("/followup-suggest", c.FollowupSuggest)
	tools.Post("/compliance-check", c.ComplianceCheck)
}

func (c *agentController) Chat(ctx *fiber.Ctx) error {
	var req dto.AgentChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return serverutils.NewBadRequest("message is required")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.agentService.Chat(ctx.UserContext(), &req)
	if err != nil {
		return service.ToAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process chat turn", res))
}

func (c *agentController) History(ctx *fiber.Ctx) error {
	res, err := c.agentService.History(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return service.ToAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session turns", res))
}

func (c *agentController) LogInteraction(ctx *fiber.Ctx) error {
	var draft agent.Draft
	if err := ctx.BodyParser(&draft); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}

	res, err := c.interactionService.Log(ctx.UserContext(), draft)
	if err != nil {
		return service.ToAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *agentController) EditLatest(ctx *fiber.Ctx) error {
	var req dto.EditLatestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interactionService.EditLatest(ctx.UserContext(), req.HCPID, req.HCPName, req.FieldsToUpdate)
	if err != nil {
		if msg, ok := service.EditFailureMessage(err); ok {
			return serverutils.NewBadRequest(msg)
		}
		return service.ToAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *agentController) HCPContext(ctx *fiber.Ctx) error {
	var hcpID *uint
	if raw := strings.TrimSpace(ctx.Query("hcp_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return serverutils.NewBadRequest("hcp_id must be a positive integer")
		}
		id := uint(parsed)
		hcpID = &id
	}

	res, err := c.interactionService.HCPContext(ctx.UserContext(), hcpID, ctx.Query("hcp_name"))
	if err != nil {
		return service.ToAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get HCP context", res))
}

func (c *agentController) FollowupSuggest(ctx *fiber.Ctx) error {
	var req dto.SuggestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}

	res, err := c.agentService.Suggest(ctx.UserContext(), &req)
	if err != nil {
		return service.ToAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success suggest follow-ups", res))
}

func (c *agentController) ComplianceCheck(ctx *fiber.Ctx) error {
	var req dto.ComplianceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}

	res, err := c.agentService.Compliance(ctx.UserContext(), &req)
	if err != nil {
		return service.ToAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check compliance", res))
}
