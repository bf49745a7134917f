package serverutils

import (
	"fmt"
	"strings"

	"xlai-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into the
// VALIDATION error code so the error middleware renders a 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
		}
		if len(fields) > 0 {
			return apperror.Validation(fmt.Sprintf("Missing required fields: %s", strings.Join(fields, ", ")))
		}
		return apperror.Validation("Invalid request body")
	}
	return nil
}

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
}

// ErrorHandlerMiddleware catches every error returned by a handler and writes
// a safe JSON body. Nothing propagates to the transport layer raw.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperror.From(err); ok {
			return ctx.Status(appErr.HTTPStatus()).JSON(fiber.Map{
				"error": appErr.Message,
				"code":  appErr.Code,
			})
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Something went wrong. Please try again.",
		})
	}
}
