package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"recipe-hub/domain"
	"recipe-hub/internal/api/presenters"
	"recipe-hub/pkg/recipe"
)

type (
	RecipeHandler interface {
		ListRecipes(c *fiber.Ctx) error
		GetRecipeStats(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		CloneRecipe(c *fiber.Ctx) error
		ToggleVisibility(c *fiber.Ctx) error
		ToggleFavorite(c *fiber.Ctx) error
		SaveRecipe(c *fiber.Ctx) error
		UnsaveRecipe(c *fiber.Ctx) error
		ShareRecipe(c *fiber.Ctx) error
		RateRecipe(c *fiber.Ctx) error
		DeleteRating(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error
		GetSavedRecipes(c *fiber.Ctx) error
		GetFavoriteRecipes(c *fiber.Ctx) error
		GetSharedWithMe(c *fiber.Ctx) error
		ListCategories(c *fiber.Ctx) error
		ListTags(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
	}
}

func (h *recipeHandler) ListRecipes(c *fiber.Ctx) error {
	userID := actorID(c)

	filter := domain.RecipeFilter{
		Page:        c.QueryInt("page", 1),
		Limit:       c.QueryInt("limit", recipe.DefaultLimit),
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		Cuisine:     c.Query("cuisine"),
		Difficulty:  c.Query("difficulty"),
		MaxCookTime: c.QueryInt("maxCookTime", 0),
		Author:      c.Query("author"),
		Tag:         c.Query("tag"),
		Featured:    queryBool(c, "featured"),
		Public:      queryBool(c, "public"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
	}

	if strings.EqualFold(filter.Author, "me") {
		if userID == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageUnauthenticated, domain.ErrTokenNotFound)
		}
		filter.Author = userID
	}

	res, err := h.recipeService.ListRecipes(c.UserContext(), filter, userID)
	if err != nil {
		return failure(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeStats(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipeStats(c.UserContext(), actorID(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return badBody(c, err)
	}

	res, err := h.recipeService.CreateRecipe(c.UserContext(), *req, userID)
	if err != nil {
		return failure(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipe(c.UserContext(), c.Params("id"), actorID(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return badBody(c, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.UserContext(), c.Params("id"), *req, userID)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.DeleteRecipe(c.UserContext(), c.Params("id"), userID); err != nil {
		return failure(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) CloneRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.CloneRecipe(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return failure(c, domain.MessageFailedCloneRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCloneRecipe)
}

func (h *recipeHandler) ToggleVisibility(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.ToggleVisibility(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return failure(c, domain.MessageFailedToggleVisibility, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleVisibility)
}

func (h *recipeHandler) ToggleFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.ToggleFavorite(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return failure(c, domain.MessageFailedToggleFavorite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleFavorite)
}

func (h *recipeHandler) SaveRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.SaveRecipe(c.UserContext(), c.Params("id"), userID); err != nil {
		return failure(c, domain.MessageFailedSaveRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusCreated, domain.MessageSuccessSaveRecipe)
}

func (h *recipeHandler) UnsaveRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.UnsaveRecipe(c.UserContext(), c.Params("id"), userID); err != nil {
		return failure(c, domain.MessageFailedUnsaveRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUnsaveRecipe)
}

func (h *recipeHandler) ShareRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ShareRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return badBody(c, err)
	}

	res, err := h.recipeService.ShareRecipe(c.UserContext(), c.Params("id"), *req, userID)
	if err != nil {
		return failure(c, domain.MessageFailedShareRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessShareRecipe)
}

func (h *recipeHandler) RateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return badBody(c, err)
	}

	res, err := h.recipeService.RateRecipe(c.UserContext(), c.Params("id"), *req, userID)
	if err != nil {
		return failure(c, domain.MessageFailedRateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRateRecipe)
}

func (h *recipeHandler) DeleteRating(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.recipeService.DeleteRating(c.UserContext(), c.Params("id"), userID); err != nil {
		return failure(c, domain.MessageFailedDeleteRating, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRating)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.ErrImageRequired)
	}

	res, err := h.recipeService.UploadRecipeImage(c.UserContext(), c.Params("id"), domain.UploadRecipeImageRequest{Image: image}, userID)
	if err != nil {
		return failure(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *recipeHandler) GetSavedRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pageParams(c)

	res, err := h.recipeService.GetSavedRecipes(c.UserContext(), page, limit, userID)
	if err != nil {
		return failure(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetFavoriteRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pageParams(c)

	res, err := h.recipeService.GetFavoriteRecipes(c.UserContext(), page, limit, userID)
	if err != nil {
		return failure(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetSharedWithMe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := pageParams(c)

	res, err := h.recipeService.GetSharedWithMe(c.UserContext(), page, limit, userID)
	if err != nil {
		return failure(c, domain.MessageFailedGetShared, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetShared)
}

func (h *recipeHandler) ListCategories(c *fiber.Ctx) error {
	res, err := h.recipeService.ListCategories(c.UserContext())
	if err != nil {
		return failure(c, domain.MessageFailedGetCategories, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCategories)
}

func (h *recipeHandler) ListTags(c *fiber.Ctx) error {
	res, err := h.recipeService.ListTags(c.UserContext())
	if err != nil {
		return failure(c, domain.MessageFailedGetTags, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func pageParams(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", recipe.DefaultLimit)
	if limit < 1 {
		limit = recipe.DefaultLimit
	}
	return page, limit
}

// queryBool returns nil when the parameter is absent or not a boolean.
func queryBool(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
