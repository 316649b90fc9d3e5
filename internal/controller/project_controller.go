package controller

import (
	"talk-rag-be/internal/dto"
	"talk-rag-be/internal/pkg/serverutils"
	"talk-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProjectController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type projectController struct {
	service service.IProjectService
}

func NewProjectController(service service.IProjectService) IProjectController {
	return &projectController{service: service}
}

func (c *projectController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rag")
	h.Post("/session", c.CreateSession)
	h.Post("/:session_id", c.Query)
	h.Delete("/:session_id", c.DeleteSession)
}

func (c *projectController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateProjectSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.CreateSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create project session", res))
}

func (c *projectController) Query(ctx *fiber.Ctx) error {
	var req dto.ProjectQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Query(ctx.Context(), ctx.Params("session_id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success query project session", res))
}

func (c *projectController) DeleteSession(ctx *fiber.Ctx) error {
	if err := c.service.DeleteSession(ctx.Context(), ctx.Params("session_id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete project session", &dto.DeleteSessionResponse{Status: "success"}))
}
