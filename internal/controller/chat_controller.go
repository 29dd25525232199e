package controller

import (
	"github.com/gofiber/fiber/v2"

	"travelmate-be/internal/dto"
	"travelmate-be/internal/pkg/serverutils"
	"travelmate-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Reply(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat", serverutils.JwtMiddleware)
	h.Post("/reply", c.Reply)
}

func (c *chatController) Reply(ctx *fiber.Ctx) error {
	var req dto.ChatReplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := c.service.GenerateReply(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Reply generated",
		"data":    res,
	})
}
