package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"travelmate-be/internal/dto"
	"travelmate-be/internal/pkg/serverutils"
	"travelmate-be/internal/service"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Save(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Load(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Rename(ctx *fiber.Ctx) error
	AppendMessages(ctx *fiber.Ctx) error
}

type conversationController struct {
	service service.IConversationService
}

func NewConversationController(service service.IConversationService) IConversationController {
	return &conversationController{service: service}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversations", serverutils.JwtMiddleware)
	h.Post("/", c.Save)
	h.Get("/", c.List)
	h.Get("/:id", c.Load)
	h.Delete("/:id", c.Delete)
	h.Patch("/:id/title", c.Rename)
	h.Post("/:id/messages", c.AppendMessages)
}

func conversationIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid conversation id")
	}
	return id, nil
}

func (c *conversationController) Save(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.SaveConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := c.service.SaveConversation(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    201,
		"message": "Conversation saved",
		"data":    res,
	})
}

func (c *conversationController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListConversations(ctx.Context(), userId, ctx.QueryInt("limit"), ctx.QueryInt("offset"))
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Conversations fetched",
		"data":    res,
	})
}

func (c *conversationController) Load(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	conversationId, err := conversationIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.LoadConversation(ctx.Context(), userId, conversationId)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Conversation fetched",
		"data":    res,
	})
}

func (c *conversationController) Delete(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	conversationId, err := conversationIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteConversation(ctx.Context(), userId, conversationId); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Conversation deleted",
		"data":    nil,
	})
}

func (c *conversationController) Rename(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	conversationId, err := conversationIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.RenameConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	if err := c.service.RenameConversation(ctx.Context(), userId, conversationId, &req); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Conversation renamed",
		"data":    nil,
	})
}

func (c *conversationController) AppendMessages(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}
	conversationId, err := conversationIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AppendMessagesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	if err := c.service.AppendMessages(ctx.Context(), userId, conversationId, &req); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Messages appended",
		"data":    nil,
	})
}
