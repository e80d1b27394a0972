package serverutils

import (
	"errors"

	"agentclone-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts apperror kinds bubbling out of handlers into
// JSON responses. Every failure becomes a visible message, none are swallowed.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = fiber.StatusUnprocessableEntity
		case errors.Is(err, apperror.ErrNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, apperror.ErrUnknownTool):
			status = fiber.StatusBadRequest
		case errors.Is(err, apperror.ErrTimeout):
			status = fiber.StatusGatewayTimeout
		case errors.Is(err, apperror.ErrEmbeddingProvider),
			errors.Is(err, apperror.ErrModelProvider):
			status = fiber.StatusBadGateway
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		return ctx.Status(status).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
}
