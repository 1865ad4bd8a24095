package serverutils

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := resolveError(err)
		if code >= fiber.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), err)
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func resolveError(err error) (int, string) {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code, appErr.Message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest, formatValidationErrors(validationErrs)
	}

	return fiber.StatusInternalServerError, "Internal server error"
}
