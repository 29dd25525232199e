package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"travelmate-be/internal/dto"
	"travelmate-be/internal/pkg/serverutils"
	"travelmate-be/internal/service"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	GetPreferences(ctx *fiber.Ctx) error
	UpdatePreferences(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(service service.IUserService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user", serverutils.JwtMiddleware)
	h.Get("/profile", c.GetProfile)
	h.Put("/profile", c.UpdateProfile)
	h.Get("/preferences", c.GetPreferences)
	h.Put("/preferences", c.UpdatePreferences)
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}
	return id, nil
}

func currentClaims(ctx *fiber.Ctx) (service.ProfileClaims, error) {
	id, err := currentUserId(ctx)
	if err != nil {
		return service.ProfileClaims{}, err
	}
	claims := service.ProfileClaims{UserId: id}
	if email, ok := ctx.Locals("email").(string); ok {
		claims.Email = email
	}
	if name, ok := ctx.Locals("full_name").(string); ok {
		claims.FullName = name
	}
	return claims, nil
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	claims, err := currentClaims(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetProfile(ctx.Context(), claims)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Profile fetched",
		"data":    res,
	})
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Profile updated",
		"data":    res,
	})
}

func (c *userController) GetPreferences(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetPreferences(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Preferences fetched",
		"data":    res,
	})
}

func (c *userController) UpdatePreferences(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.TravelPreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := c.service.UpdatePreferences(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Preferences updated",
		"data":    res,
	})
}
