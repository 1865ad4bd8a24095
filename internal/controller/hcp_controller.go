package controller

import (
	"hcp-crm-be/internal/pkg/serverutils"
	"hcp-crm-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHCPController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Interactions(ctx *fiber.Ctx) error
}

type hcpController struct {
	hcpService         service.IHCPService
	interactionService service.IInteractionService
}

func NewHCPController(hcpService service.IHCPService, interactionService service.IInteractionService) IHCPController {
	return &hcpController{
		hcpService:         hcpService,
		interactionService: interactionService,
	}
}

func (c *hcpController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/hcps")
	h.Get("", c.GetAll)
	h.Get("/:id/interactions", c.Interactions)
}

func (c *hcpController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.hcpService.List(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all HCPs", res))
}

func (c *hcpController) Interactions(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.interactionService.ListForHCP(ctx.UserContext(), id)
	if err != nil {
		return service.ToAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get HCP interactions", res))
}

// idParam reads a positive numeric :id route parameter.
func idParam(ctx *fiber.Ctx) (uint, error) {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, serverutils.NewBadRequest("id must be a positive integer")
	}
	return uint(id), nil
}
