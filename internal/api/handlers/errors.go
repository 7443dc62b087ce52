package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"recipe-hub/domain"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/internal/utils/storage"
)

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrRecipeAccessDenied),
		errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrVideoNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrRecipeAlreadySaved),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrShareTargetIsSender),
		errors.Is(err, domain.ErrImageRequired),
		errors.Is(err, domain.ErrUnsupportedSource),
		errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, storage.ErrFileTypeNotAllow),
		errors.Is(err, storage.ErrFileTooLarge):
		return fiber.StatusBadRequest
	case errors.Is(err, storage.ErrStorageDisabled),
		errors.Is(err, domain.ErrAIProviderDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// badBody rejects a request body that could not be decoded. A mistyped
// field is reported in the validation details.
func badBody(c *fiber.Ctx, err error) error {
	return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.DecodeError(err))
}

func failure(c *fiber.Ctx, message string, err error) error {
	return presenters.ErrorResponse(c, errorStatus(err), message, err)
}

// actorID is the authenticated user, or "" on public routes.
func actorID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
