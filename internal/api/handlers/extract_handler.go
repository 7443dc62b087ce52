package handlers

import (
	"github.com/gofiber/fiber/v2"

	"recipe-hub/domain"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/pkg/extract"
)

type (
	ExtractHandler interface {
		ExtractRecipe(c *fiber.Ctx) error
	}

	extractHandler struct {
		extractService extract.ExtractService
	}
)

func NewExtractHandler(extractService extract.ExtractService) ExtractHandler {
	return &extractHandler{
		extractService: extractService,
	}
}

func (h *extractHandler) ExtractRecipe(c *fiber.Ctx) error {
	req := new(domain.ExtractRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return badBody(c, err)
	}

	res, err := h.extractService.ExtractRecipe(c.UserContext(), *req)
	if err != nil {
		return failure(c, domain.MessageFailedExtractRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessExtractRecipe)
}
