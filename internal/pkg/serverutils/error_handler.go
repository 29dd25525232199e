package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"travelmate-be/internal/apperr"
)

// ErrorHandlerMiddleware converts errors escaping a handler into the standard
// JSON envelope. Handler failures never crash the process; every error is
// rendered inline with a status derived from its apperr kind.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := apperr.HTTPStatus(apperr.KindOf(err))
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		return ctx.Status(status).JSON(fiber.Map{
			"success": false,
			"code":    status,
			"message": err.Error(),
		})
	}
}
