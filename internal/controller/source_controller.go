package controller

import (
	"agentclone-be/internal/dto"
	"agentclone-be/internal/pkg/serverutils"
	"agentclone-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISourceController interface {
	RegisterRoutes(r fiber.Router)
	GetCatalog(ctx *fiber.Ctx) error
	AddSource(ctx *fiber.Ctx) error
	RemoveSource(ctx *fiber.Ctx) error
}

type sourceController struct {
	sourceService service.ISourceService
}

func NewSourceController(sourceService service.ISourceService) ISourceController {
	return &sourceController{
		sourceService: sourceService,
	}
}

func (c *sourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/source/v1")
	h.Get("", c.GetCatalog)
	h.Post("", c.AddSource)
	h.Delete("", c.RemoveSource)
}

func (c *sourceController) GetCatalog(ctx *fiber.Ctx) error {
	res, err := c.sourceService.GetCatalog(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show source catalog", res))
}

func (c *sourceController) AddSource(ctx *fiber.Ctx) error {
	var req dto.AddSourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.sourceService.AddSource(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add source", nil))
}

func (c *sourceController) RemoveSource(ctx *fiber.Ctx) error {
	var req dto.AddSourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.sourceService.RemoveSource(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove source", nil))
}
