package presenters

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"recipe-hub/domain"
)

type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Details []domain.FieldError `json:"details,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes the failure envelope. Server errors are logged and
// replaced by a generic message.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Success: false,
		Message: message,
	}

	var verr *domain.ValidationError
	switch {
	case err == nil:
	case statusCode >= fiber.StatusInternalServerError:
		log.Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Interface("request_id", c.Locals("requestid")).
			Msg(message)
		res.Error = domain.MessageInternalError
	case errors.As(err, &verr):
		res.Error = domain.ErrValidationFailed.Error()
		res.Details = verr.Details
	default:
		res.Error = err.Error()
	}

	return c.Status(statusCode).JSON(res)
}
