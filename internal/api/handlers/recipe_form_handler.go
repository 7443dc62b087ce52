package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"recipe-hub/domain"
	"recipe-hub/pkg/recipe"
)

type (
	// RecipeFormHandler serves the editor's form posts. Successful actions
	// redirect to the page to show next; failures return the submitted
	// values so the form can be rendered again.
	RecipeFormHandler interface {
		Create(c *fiber.Ctx) error
		Update(c *fiber.Ctx) error
		Delete(c *fiber.Ctx) error
		Clone(c *fiber.Ctx) error
		ToggleFavorite(c *fiber.Ctx) error
		ToggleVisibility(c *fiber.Ctx) error
	}

	recipeFormHandler struct {
		recipeService recipe.RecipeService
	}

	formFailure struct {
		Error   string              `json:"error"`
		Details []domain.FieldError `json:"details,omitempty"`
		Values  url.Values          `json:"values,omitempty"`
	}
)

func NewRecipeFormHandler(recipeService recipe.RecipeService) RecipeFormHandler {
	return &recipeFormHandler{
		recipeService: recipeService,
	}
}

func (h *recipeFormHandler) Create(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	values, err := readForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(formFailure{Error: domain.MessageFailedBodyRequest})
	}

	req, err := decodeRecipeForm(values)
	if err != nil {
		return formError(c, domain.MessageFailedCreateRecipe, err, values)
	}

	res, err := h.recipeService.CreateRecipe(c.UserContext(), req, userID)
	if err != nil {
		return formError(c, domain.MessageFailedCreateRecipe, err, values)
	}

	return c.Redirect("/recipes/"+res.ID, fiber.StatusSeeOther)
}

func (h *recipeFormHandler) Update(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	values, err := readForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(formFailure{Error: domain.MessageFailedBodyRequest})
	}

	req, err := decodeRecipeForm(values)
	if err != nil {
		return formError(c, domain.MessageFailedUpdateRecipe, err, values)
	}

	res, err := h.recipeService.UpdateRecipe(c.UserContext(), c.Params("id"), updateFromForm(req), userID)
	if err != nil {
		return formError(c, domain.MessageFailedUpdateRecipe, err, values)
	}

	return c.Redirect("/recipes/"+res.ID, fiber.StatusSeeOther)
}

func (h *recipeFormHandler) Delete(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.DeleteRecipe(c.UserContext(), c.Params("id"), userID); err != nil {
		return formError(c, domain.MessageFailedDeleteRecipe, err, nil)
	}

	return c.Redirect("/recipes", fiber.StatusSeeOther)
}

func (h *recipeFormHandler) Clone(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.CloneRecipe(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return formError(c, domain.MessageFailedCloneRecipe, err, nil)
	}

	return c.Redirect("/recipes/"+res.ID, fiber.StatusSeeOther)
}

func (h *recipeFormHandler) ToggleFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if _, err := h.recipeService.ToggleFavorite(c.UserContext(), recipeID, userID); err != nil {
		return formError(c, domain.MessageFailedToggleFavorite, err, nil)
	}

	return c.Redirect("/recipes/"+recipeID, fiber.StatusSeeOther)
}

func (h *recipeFormHandler) ToggleVisibility(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if _, err := h.recipeService.ToggleVisibility(c.UserContext(), recipeID, userID); err != nil {
		return formError(c, domain.MessageFailedToggleVisibility, err, nil)
	}

	return c.Redirect("/recipes/"+recipeID, fiber.StatusSeeOther)
}

func formError(c *fiber.Ctx, message string, err error, values url.Values) error {
	status := errorStatus(err)
	res := formFailure{
		Error:  message,
		Values: values,
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		res.Details = verr.Details
	} else if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg(message)
	}

	return c.Status(status).JSON(res)
}
