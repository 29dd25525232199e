package controller

import (
	"github.com/gofiber/fiber/v2"

	"travelmate-be/internal/dto"
	"travelmate-be/internal/pkg/serverutils"
	"travelmate-be/internal/service"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	ForgotPassword(ctx *fiber.Ctx) error
	VerifyOtp(ctx *fiber.Ctx) error
	ResetPassword(ctx *fiber.Ctx) error
	ResendOtp(ctx *fiber.Ctx) error
}

type authController struct {
	authService  service.IAuthService
	resetService service.IPasswordResetService
}

func NewAuthController(authService service.IAuthService, resetService service.IPasswordResetService) IAuthController {
	return &authController{
		authService:  authService,
		resetService: resetService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
	h.Post("/forgot-password", c.ForgotPassword)
	h.Post("/verify-otp", c.VerifyOtp)
	h.Post("/reset-password", c.ResetPassword)
	h.Post("/resend-otp", c.ResendOtp)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "User registered successfully",
		"data":    res,
	})
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req, ctx.IP(), ctx.Get("User-Agent"))
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Login successful",
		"data":    res,
	})
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return fiber.NewError(fiber.StatusUnauthorized, "missing token")
	}

	if err := c.authService.Logout(ctx.Context(), authHeader[7:]); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Logged out",
		"data":    nil,
	})
}

func (c *authController) ForgotPassword(ctx *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := c.resetService.RequestOTP(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OTP sent to your email",
		"data":    res,
	})
}

func (c *authController) VerifyOtp(ctx *fiber.Ctx) error {
	var req dto.VerifyOtpRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := c.resetService.VerifyOTP(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OTP verified",
		"data":    res,
	})
}

func (c *authController) ResetPassword(ctx *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	if err := c.resetService.ResetPassword(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Password reset successfully",
		"data":    nil,
	})
}

func (c *authController) ResendOtp(ctx *fiber.Ctx) error {
	var req dto.ResendOtpRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := c.resetService.ResendOTP(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "A new OTP has been sent",
		"data":    res,
	})
}
