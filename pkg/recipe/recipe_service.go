package recipe

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/internal/utils"
	"recipe-hub/internal/utils/mailing"
	"recipe-hub/internal/utils/storage"
	"recipe-hub/pkg/user"
)

const (
	maxTitleLength = 100
	copySuffix     = " (Copy)"
	imageFolder    = "recipes"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error)
		GetRecipe(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error)
		ListRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) (domain.RecipeListResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		CloneRecipe(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error)
		ToggleVisibility(ctx context.Context, recipeID string, userID string) (domain.ToggleVisibilityResponse, error)
		ToggleFavorite(ctx context.Context, recipeID string, userID string) (domain.ToggleFavoriteResponse, error)
		SaveRecipe(ctx context.Context, recipeID string, userID string) error
		UnsaveRecipe(ctx context.Context, recipeID string, userID string) error
		ShareRecipe(ctx context.Context, recipeID string, req domain.ShareRecipeRequest, userID string) (domain.SharedRecipeResponse, error)
		RateRecipe(ctx context.Context, recipeID string, req domain.RateRecipeRequest, userID string) (domain.RatingResponse, error)
		DeleteRating(ctx context.Context, recipeID string, userID string) error
		UploadRecipeImage(ctx context.Context, recipeID string, req domain.UploadRecipeImageRequest, userID string) (domain.RecipeDetail, error)
		GetSavedRecipes(ctx context.Context, page, limit int, userID string) (domain.RecipeListResponse, error)
		GetFavoriteRecipes(ctx context.Context, page, limit int, userID string) (domain.RecipeListResponse, error)
		GetSharedWithMe(ctx context.Context, page, limit int, userID string) (domain.SharedRecipeListResponse, error)
		GetRecipeStats(ctx context.Context, userID string) (domain.RecipeStats, error)
		ListCategories(ctx context.Context) ([]domain.CategoryResponse, error)
		ListTags(ctx context.Context) ([]domain.TagResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		userRepository   user.UserRepository
		storage          storage.AwsS3
		mailer           mailing.Mailer
		validator        *validator.Validate
		appURL           string
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	userRepository user.UserRepository,
	s3 storage.AwsS3,
	mailer mailing.Mailer,
	validator *validator.Validate,
	appURL string,
) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		storage:          s3,
		mailer:           mailer,
		validator:        validator,
		appURL:           strings.TrimRight(appURL, "/"),
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	ownerID, err := parseUserID(userID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	req = trimCreateRequest(req)
	if err := utils.ValidateStruct(s.validator, req); err != nil {
		return domain.RecipeDetail{}, err
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      ownerID,
		CategoryID:  categoryID,
		Title:       req.Title,
		Description: req.Description,
		PrepTime:    req.PrepTime.IntPtr(),
		CookTime:    req.CookTime.IntPtr(),
		Servings:    req.Servings.IntPtr(),
		Difficulty:  withDefault(req.Difficulty, entities.DifficultyMedium),
		Cuisine:     req.Cuisine,
		Public:      req.Public,
		Source:      req.Source,
		SourceType:  withDefault(req.SourceType, entities.SourceManual),
	}
	recipe.Ingredients = buildIngredients(recipe.ID, req.Ingredients)
	recipe.Instructions = buildInstructions(recipe.ID, req.Instructions)
	recipe.Nutrition = buildNutrition(recipe.ID, req.Nutrition)

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, tagsFromNames(req.Tags)); err != nil {
		return domain.RecipeDetail{}, err
	}

	return s.detail(ctx, recipe.ID, ownerID.String())
}

func (s *recipeService) GetRecipe(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error) {
	id, err := parseRecipeID(recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return s.detail(ctx, id, userID)
}

func (s *recipeService) ListRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) (domain.RecipeListResponse, error) {
	q := BuildListQuery(filter, userID)

	recipes, total, err := s.recipeRepository.ListRecipes(ctx, q)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	return domain.RecipeListResponse{
		Recipes:    toRecipeList(recipes),
		Pagination: q.Pagination(total),
	}, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	recipe, err := s.loadOwned(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	req = trimUpdateRequest(req)
	if err := utils.ValidateStruct(s.validator, req); err != nil {
		return domain.RecipeDetail{}, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.PrepTime != nil {
		recipe.PrepTime = req.PrepTime.IntPtr()
	}
	if req.CookTime != nil {
		recipe.CookTime = req.CookTime.IntPtr()
	}
	if req.Servings != nil {
		recipe.Servings = req.Servings.IntPtr()
	}
	for _, field := range req.Clear {
		switch field {
		case domain.FieldPrepTime:
			recipe.PrepTime = nil
		case domain.FieldCookTime:
			recipe.CookTime = nil
		case domain.FieldServings:
			recipe.Servings = nil
		}
	}
	if req.Difficulty != nil {
		recipe.Difficulty = *req.Difficulty
	}
	if req.Cuisine != nil {
		recipe.Cuisine = *req.Cuisine
	}
	if req.Public != nil {
		recipe.Public = *req.Public
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, *req.CategoryID)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
		recipe.CategoryID = categoryID
	}

	var opts UpdateOptions
	if req.Ingredients != nil {
		recipe.Ingredients = buildIngredients(recipe.ID, req.Ingredients)
		opts.ReplaceIngredients = true
	}
	if req.Instructions != nil {
		recipe.Instructions = buildInstructions(recipe.ID, req.Instructions)
		opts.ReplaceInstructions = true
	}
	if req.Nutrition != nil {
		recipe.Nutrition = buildNutrition(recipe.ID, req.Nutrition)
		opts.ReplaceNutrition = true
	}
	if req.Tags != nil {
		opts.ReplaceTags = true
		opts.Tags = tagsFromNames(req.Tags)
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, opts); err != nil {
		return domain.RecipeDetail{}, mapNotFound(err)
	}

	return s.detail(ctx, recipe.ID, userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.loadOwned(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		return err
	}

	s.removeImage(ctx, recipe.ID, recipe.ImageURL)
	return nil
}

func (s *recipeService) CloneRecipe(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error) {
	ownerID, err := parseUserID(userID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	id, err := parseRecipeID(recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	source, err := s.recipeRepository.GetRecipeAggregate(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, mapNotFound(err)
	}
	if !canView(source, userID) {
		return domain.RecipeDetail{}, domain.ErrRecipeNotFound
	}

	clone := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      ownerID,
		CategoryID:  source.CategoryID,
		Title:       cloneTitle(source.Title),
		Description: source.Description,
		ImageURL:    source.ImageURL,
		PrepTime:    copyInt(source.PrepTime),
		CookTime:    copyInt(source.CookTime),
		Servings:    copyInt(source.Servings),
		Difficulty:  source.Difficulty,
		Cuisine:     source.Cuisine,
		Public:      false,
		Source:      source.Source,
		SourceType:  source.SourceType,
	}

	clone.Ingredients = make([]entities.Ingredient, 0, len(source.Ingredients))
	for _, ing := range source.Ingredients {
		ing.ID = uuid.New()
		ing.RecipeID = clone.ID
		clone.Ingredients = append(clone.Ingredients, ing)
	}

	clone.Instructions = make([]entities.Instruction, 0, len(source.Instructions))
	for _, ins := range source.Instructions {
		ins.ID = uuid.New()
		ins.RecipeID = clone.ID
		clone.Instructions = append(clone.Instructions, ins)
	}

	if source.Nutrition != nil {
		nutrition := *source.Nutrition
		nutrition.ID = uuid.New()
		nutrition.RecipeID = clone.ID
		clone.Nutrition = &nutrition
	}

	tags := make([]entities.Tag, 0, len(source.Tags))
	for _, rt := range source.Tags {
		if rt.Tag != nil {
			tags = append(tags, entities.Tag{Name: rt.Tag.Name, Slug: rt.Tag.Slug})
		}
	}

	if err := s.recipeRepository.CreateRecipe(ctx, clone, tags); err != nil {
		return domain.RecipeDetail{}, err
	}

	return s.detail(ctx, clone.ID, userID)
}

func (s *recipeService) ToggleVisibility(ctx context.Context, recipeID string, userID string) (domain.ToggleVisibilityResponse, error) {
	recipe, err := s.loadOwned(ctx, recipeID, userID)
	if err != nil {
		return domain.ToggleVisibilityResponse{}, err
	}

	public, err := s.recipeRepository.ToggleVisibility(ctx, recipe.ID)
	if err != nil {
		return domain.ToggleVisibilityResponse{}, mapNotFound(err)
	}

	return domain.ToggleVisibilityResponse{Success: true, Public: public}, nil
}

func (s *recipeService) ToggleFavorite(ctx context.Context, recipeID string, userID string) (domain.ToggleFavoriteResponse, error) {
	actorID, err := parseUserID(userID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, err
	}

	recipe, err := s.loadVisible(ctx, recipeID, userID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, err
	}

	favorited, err := s.recipeRepository.ToggleFavorite(ctx, actorID, recipe.ID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, err
	}

	return domain.ToggleFavoriteResponse{Favorited: favorited}, nil
}

func (s *recipeService) SaveRecipe(ctx context.Context, recipeID string, userID string) error {
	actorID, err := parseUserID(userID)
	if err != nil {
		return err
	}

	recipe, err := s.loadVisible(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	err = s.recipeRepository.SaveRecipe(ctx, &entities.SavedRecipe{
		ID:       uuid.New(),
		UserID:   actorID,
		RecipeID: recipe.ID,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrRecipeAlreadySaved
	}
	return err
}

func (s *recipeService) UnsaveRecipe(ctx context.Context, recipeID string, userID string) error {
	actorID, err := parseUserID(userID)
	if err != nil {
		return err
	}

	id, err := parseRecipeID(recipeID)
	if err != nil {
		return err
	}

	return s.recipeRepository.UnsaveRecipe(ctx, actorID, id)
}

func (s *recipeService) ShareRecipe(ctx context.Context, recipeID string, req domain.ShareRecipeRequest, userID string) (domain.SharedRecipeResponse, error) {
	senderID, err := parseUserID(userID)
	if err != nil {
		return domain.SharedRecipeResponse{}, err
	}

	req.ToUserID = strings.TrimSpace(req.ToUserID)
	req.Message = strings.TrimSpace(req.Message)
	if err := utils.ValidateStruct(s.validator, req); err != nil {
		return domain.SharedRecipeResponse{}, err
	}

	id, err := parseRecipeID(recipeID)
	if err != nil {
		return domain.SharedRecipeResponse{}, err
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return domain.SharedRecipeResponse{}, mapNotFound(err)
	}
	if !recipe.Public {
		return domain.SharedRecipeResponse{}, domain.ErrRecipeNotFound
	}

	targetID := uuid.MustParse(req.ToUserID)
	if targetID == senderID {
		return domain.SharedRecipeResponse{}, domain.ErrShareTargetIsSender
	}

	target, err := s.userRepository.GetUserByID(ctx, targetID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SharedRecipeResponse{}, domain.ErrUserNotFound
		}
		return domain.SharedRecipeResponse{}, err
	}

	share := &entities.SharedRecipe{
		ID:         uuid.New(),
		RecipeID:   recipe.ID,
		FromUserID: senderID,
		ToUserID:   target.ID,
		Message:    req.Message,
	}
	if err := s.recipeRepository.CreateShare(ctx, share); err != nil {
		return domain.SharedRecipeResponse{}, err
	}

	s.notifyShare(ctx, recipe, target, senderID, req.Message)

	return toSharedRecipeResponse(share), nil
}

func (s *recipeService) RateRecipe(ctx context.Context, recipeID string, req domain.RateRecipeRequest, userID string) (domain.RatingResponse, error) {
	actorID, err := parseUserID(userID)
	if err != nil {
		return domain.RatingResponse{}, err
	}

	req.Comment = strings.TrimSpace(req.Comment)
	if err := utils.ValidateStruct(s.validator, req); err != nil {
		return domain.RatingResponse{}, err
	}

	recipe, err := s.loadVisible(ctx, recipeID, userID)
	if err != nil {
		return domain.RatingResponse{}, err
	}

	rating := &entities.Rating{
		ID:       uuid.New(),
		UserID:   actorID,
		RecipeID: recipe.ID,
		Value:    req.Value,
		Comment:  req.Comment,
	}
	if err := s.recipeRepository.UpsertRating(ctx, rating); err != nil {
		return domain.RatingResponse{}, err
	}

	return domain.RatingResponse{
		ID:        rating.ID.String(),
		RecipeID:  rating.RecipeID.String(),
		Value:     rating.Value,
		Comment:   rating.Comment,
		UpdatedAt: rating.UpdatedAt,
	}, nil
}

func (s *recipeService) DeleteRating(ctx context.Context, recipeID string, userID string) error {
	actorID, err := parseUserID(userID)
	if err != nil {
		return err
	}

	id, err := parseRecipeID(recipeID)
	if err != nil {
		return err
	}

	return s.recipeRepository.DeleteRating(ctx, actorID, id)
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID string, req domain.UploadRecipeImageRequest, userID string) (domain.RecipeDetail, error) {
	if req.Image == nil {
		return domain.RecipeDetail{}, domain.ErrImageRequired
	}

	recipe, err := s.loadOwned(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	objectKey, err := s.storage.UploadFile(ctx, recipe.ID.String(), req.Image, imageFolder, storage.AllowImage...)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	if err := s.recipeRepository.UpdateImageURL(ctx, recipe.ID, s.storage.GetPublicLinkKey(objectKey)); err != nil {
		return domain.RecipeDetail{}, err
	}

	s.removeImage(ctx, recipe.ID, recipe.ImageURL)

	return s.detail(ctx, recipe.ID, userID)
}

func (s *recipeService) GetSavedRecipes(ctx context.Context, page, limit int, userID string) (domain.RecipeListResponse, error) {
	actorID, err := parseUserID(userID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	q := BuildListQuery(domain.RecipeFilter{Page: page, Limit: limit}, userID)
	recipes, total, err := s.recipeRepository.GetSavedRecipes(ctx, actorID, q)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	return domain.RecipeListResponse{
		Recipes:    toRecipeList(recipes),
		Pagination: q.Pagination(total),
	}, nil
}

func (s *recipeService) GetFavoriteRecipes(ctx context.Context, page, limit int, userID string) (domain.RecipeListResponse, error) {
	actorID, err := parseUserID(userID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	q := BuildListQuery(domain.RecipeFilter{Page: page, Limit: limit}, userID)
	recipes, total, err := s.recipeRepository.GetFavoriteRecipes(ctx, actorID, q)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	return domain.RecipeListResponse{
		Recipes:    toRecipeList(recipes),
		Pagination: q.Pagination(total),
	}, nil
}

func (s *recipeService) GetSharedWithMe(ctx context.Context, page, limit int, userID string) (domain.SharedRecipeListResponse, error) {
	actorID, err := parseUserID(userID)
	if err != nil {
		return domain.SharedRecipeListResponse{}, err
	}

	q := BuildListQuery(domain.RecipeFilter{Page: page, Limit: limit}, userID)
	shares, total, err := s.recipeRepository.GetSharedWithUser(ctx, actorID, q)
	if err != nil {
		return domain.SharedRecipeListResponse{}, err
	}

	res := domain.SharedRecipeListResponse{
		Shares:     make([]domain.SharedRecipeResponse, 0, len(shares)),
		Pagination: q.Pagination(total),
	}
	for i := range shares {
		res.Shares = append(res.Shares, toSharedRecipeResponse(&shares[i]))
	}
	return res, nil
}

func (s *recipeService) GetRecipeStats(ctx context.Context, userID string) (domain.RecipeStats, error) {
	return s.recipeRepository.GetRecipeStats(ctx, BuildListQuery(domain.RecipeFilter{}, userID))
}

func (s *recipeService) ListCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.recipeRepository.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.CategoryResponse, 0, len(categories))
	for i := range categories {
		res = append(res, *toCategoryResponse(&categories[i]))
	}
	return res, nil
}

func (s *recipeService) ListTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.recipeRepository.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TagResponse, 0, len(tags))
	for _, t := range tags {
		res = append(res, domain.TagResponse{
			ID:          t.ID.String(),
			Name:        t.Name,
			Slug:        t.Slug,
			RecipeCount: t.RecipeCount,
		})
	}
	return res, nil
}

// detail loads the full aggregate as seen by userID. Recipes the caller
// may not see are reported as missing.
func (s *recipeService) detail(ctx context.Context, id uuid.UUID, userID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeAggregate(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, mapNotFound(err)
	}
	if !canView(recipe, userID) {
		return domain.RecipeDetail{}, domain.ErrRecipeNotFound
	}

	counts, err := s.recipeRepository.GetRecipeCounts(ctx, recipe.ID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	var flags UserFlags
	if actorID, err := uuid.Parse(userID); err == nil {
		flags, err = s.recipeRepository.GetUserFlags(ctx, actorID, recipe.ID)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
	}

	return toRecipeDetail(recipe, counts, flags, recipe.UserID.String() == userID), nil
}

func (s *recipeService) loadOwned(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	id, err := parseRecipeID(recipeID)
	if err != nil {
		return nil, err
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if recipe.UserID.String() != userID {
		// a private recipe stays indistinguishable from a missing one
		if !canView(recipe, userID) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, domain.ErrRecipeAccessDenied
	}
	return recipe, nil
}

func (s *recipeService) loadVisible(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	id, err := parseRecipeID(recipeID)
	if err != nil {
		return nil, err
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !canView(recipe, userID) {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

func (s *recipeService) resolveCategory(ctx context.Context, categoryID string) (*uuid.UUID, error) {
	if categoryID == "" {
		return nil, nil
	}

	id, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, domain.ErrCategoryNotFound
	}

	if _, err := s.recipeRepository.GetCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &id, nil
}

// removeImage deletes a stored image that belongs to recipeID. Clones
// share their source's object, so keys named after another recipe are
// left alone.
func (s *recipeService) removeImage(ctx context.Context, recipeID uuid.UUID, imageURL string) {
	if imageURL == "" {
		return
	}

	objectKey := s.storage.GetObjectKeyFromLink(imageURL)
	if objectKey == "" || !strings.HasPrefix(path.Base(objectKey), recipeID.String()) {
		return
	}

	if err := s.storage.DeleteFile(ctx, objectKey); err != nil {
		log.Warn().Err(err).Str("recipe_id", recipeID.String()).Msg("failed to delete recipe image")
	}
}

func (s *recipeService) notifyShare(ctx context.Context, recipe *entities.Recipe, target *entities.User, senderID uuid.UUID, message string) {
	fromName := "Someone"
	if sender, err := s.userRepository.GetUserByID(ctx, senderID.String()); err == nil && sender.Name != "" {
		fromName = sender.Name
	}

	body, err := mailing.BuildShareEmail(mailing.ShareEmailData{
		ToName:   target.Name,
		FromName: fromName,
		Title:    recipe.Title,
		Message:  message,
		Link:     fmt.Sprintf("%s/recipes/%s", s.appURL, recipe.ID),
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to render share email")
		return
	}

	subject := fmt.Sprintf("%s shared a recipe with you", fromName)
	if err := s.mailer.SendMail(target.Email, subject, body); err != nil {
		log.Warn().Err(err).Str("recipe_id", recipe.ID.String()).Msg("failed to send share email")
	}
}

func canView(recipe *entities.Recipe, userID string) bool {
	return recipe.Public || recipe.UserID.String() == userID
}

func parseRecipeID(recipeID string) (uuid.UUID, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return uuid.Nil, domain.ErrRecipeNotFound
	}
	return id, nil
}

func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, domain.ErrTokenInvalid
	}
	return id, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRecipeNotFound
	}
	return err
}

func cloneTitle(title string) string {
	base := []rune(title)
	if limit := maxTitleLength - len([]rune(copySuffix)); len(base) > limit {
		base = []rune(strings.TrimSpace(string(base[:limit])))
	}
	return string(base) + copySuffix
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
