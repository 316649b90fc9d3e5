package controller

import (
	"talk-rag-be/internal/dto"
	"talk-rag-be/internal/pkg/serverutils"
	"talk-rag-be/internal/service"
	"talk-rag-be/pkg/rag/ragerr"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBotController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type botController struct {
	service service.IBotService
}

func NewBotController(service service.IBotService) IBotController {
	return &botController{service: service}
}

func (c *botController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/bots")
	h.Use(serverutils.JwtMiddleware) // provisioning is an operator surface
	h.Post("", c.Create)
	h.Get(":id", c.Show)
}

func (c *botController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateBotRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create bot", res))
}

func (c *botController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &ragerr.BotNotFoundError{BotID: ctx.Params("id")}
	}

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show bot", res))
}
