package controller

import (
	"ordermypdf-be/internal/dto"
	"ordermypdf-be/internal/pkg/serverutils"
	"ordermypdf-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IResolveController interface {
	RegisterRoutes(r fiber.Router)
	Resolve(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type resolveController struct {
	resolveService service.IResolveService
}

func NewResolveController(resolveService service.IResolveService) IResolveController {
	return &resolveController{
		resolveService: resolveService,
	}
}

func (c *resolveController) RegisterRoutes(r fiber.Router) {
	r.Post("/resolve", c.Resolve)
	r.Post("/sessions/:id/reset", c.ResetSession)
	r.Get("/health", c.Health)
}

func (c *resolveController) Resolve(ctx *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.resolveService.Resolve(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}

func (c *resolveController) ResetSession(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "session id is required"))
	}

	if err := c.resolveService.ResetSession(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(dto.ResetSessionResponse{SessionId: id, Reset: true})
}

func (c *resolveController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{Status: "ok", Version: "1.0.0"})
}
