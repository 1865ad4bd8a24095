package controller

import (
	"hcp-crm-be/internal/pkg/serverutils"
	"hcp-crm-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInteractionController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type interactionController struct {
	service service.IInteractionService
}

func NewInteractionController(service service.IInteractionService) IInteractionController {
	return &interactionController{service: service}
}

func (c *interactionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interactions")
	h.Get("/:id", c.Show)
}

func (c *interactionController) Show(ctx *fiber.Ctx) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.UserContext(), id)
	if err != nil {
		return service.ToAppError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show interaction", res))
}
