package recipe

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"recipe-hub/domain"
	"recipe-hub/entities"
)

func buildIngredients(recipeID uuid.UUID, reqs []domain.IngredientRequest) []entities.Ingredient {
	ingredients := make([]entities.Ingredient, 0, len(reqs))
	for i, req := range reqs {
		ingredients = append(ingredients, entities.Ingredient{
			ID:       uuid.New(),
			RecipeID: recipeID,
			Name:     req.Name,
			Amount:   float64(req.Amount),
			Unit:     req.Unit,
			Notes:    req.Notes,
			Order:    i,
		})
	}
	return ingredients
}

func buildInstructions(recipeID uuid.UUID, reqs []domain.InstructionRequest) []entities.Instruction {
	instructions := make([]entities.Instruction, 0, len(reqs))
	for i, req := range reqs {
		instructions = append(instructions, entities.Instruction{
			ID:       uuid.New(),
			RecipeID: recipeID,
			Step:     i + 1,
			Text:     req.Instruction,
		})
	}
	return instructions
}

func buildNutrition(recipeID uuid.UUID, req *domain.NutritionRequest) *entities.NutritionInfo {
	if req == nil {
		return nil
	}
	return &entities.NutritionInfo{
		ID:       uuid.New(),
		RecipeID: recipeID,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Fiber:    req.Fiber,
		Sugar:    req.Sugar,
	}
}

func trimCreateRequest(req domain.CreateRecipeRequest) domain.CreateRecipeRequest {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Cuisine = strings.TrimSpace(req.Cuisine)
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	req.Source = strings.TrimSpace(req.Source)
	req.Ingredients = trimIngredients(req.Ingredients)
	req.Instructions = trimInstructions(req.Instructions)
	req.Tags = trimTags(req.Tags)
	return req
}

func trimUpdateRequest(req domain.UpdateRecipeRequest) domain.UpdateRecipeRequest {
	req.Title = trimPtr(req.Title)
	req.Description = trimPtr(req.Description)
	req.Cuisine = trimPtr(req.Cuisine)
	req.CategoryID = trimPtr(req.CategoryID)
	req.Ingredients = trimIngredients(req.Ingredients)
	req.Instructions = trimInstructions(req.Instructions)
	req.Tags = trimTags(req.Tags)
	return req
}

// The trim helpers keep nil slices nil: a nil collection on update means
// "leave unchanged".
func trimIngredients(reqs []domain.IngredientRequest) []domain.IngredientRequest {
	if reqs == nil {
		return nil
	}
	out := make([]domain.IngredientRequest, len(reqs))
	for i, req := range reqs {
		req.Name = strings.TrimSpace(req.Name)
		req.Unit = strings.TrimSpace(req.Unit)
		req.Notes = strings.TrimSpace(req.Notes)
		out[i] = req
	}
	return out
}

func trimInstructions(reqs []domain.InstructionRequest) []domain.InstructionRequest {
	if reqs == nil {
		return nil
	}
	out := make([]domain.InstructionRequest, len(reqs))
	for i, req := range reqs {
		out[i] = domain.InstructionRequest{Instruction: strings.TrimSpace(req.Instruction)}
	}
	return out
}

func trimTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// averageRating is the mean of ratings, or 0 when there are none.
func averageRating(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

func toRecipe(r *entities.Recipe) domain.Recipe {
	res := domain.Recipe{
		ID:          r.ID.String(),
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		Difficulty:  r.Difficulty,
		Cuisine:     r.Cuisine,
		Public:      r.Public,
		Featured:    r.Featured,
		Tags:        make([]domain.TagResponse, 0, len(r.Tags)),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.User != nil {
		res.Author = toUserSummary(r.User)
	}
	if r.Category != nil {
		res.Category = toCategoryResponse(r.Category)
	}
	for _, rt := range r.Tags {
		if rt.Tag == nil {
			continue
		}
		res.Tags = append(res.Tags, domain.TagResponse{
			ID:   rt.Tag.ID.String(),
			Name: rt.Tag.Name,
			Slug: rt.Tag.Slug,
		})
	}
	slices.SortFunc(res.Tags, func(a, b domain.TagResponse) int {
		return strings.Compare(a.Slug, b.Slug)
	})

	return res
}

// toRecipeList maps listing rows. The average comes from the rating
// values loaded with each row; the rows themselves are not exposed.
func toRecipeList(recipes []entities.Recipe) []domain.Recipe {
	res := make([]domain.Recipe, 0, len(recipes))
	for i := range recipes {
		var sum int64
		for _, rating := range recipes[i].Ratings {
			sum += int64(rating.Value)
		}
		count := int64(len(recipes[i].Ratings))

		item := toRecipe(&recipes[i])
		item.AverageRating = averageRating(sum, count)
		item.RatingCount = count
		res = append(res, item)
	}
	return res
}

func toRecipeDetail(r *entities.Recipe, counts RecipeCounts, flags UserFlags, isOwner bool) domain.RecipeDetail {
	base := toRecipe(r)
	base.AverageRating = averageRating(counts.RatingSum, counts.RatingCount)
	base.RatingCount = counts.RatingCount

	detail := domain.RecipeDetail{
		Recipe:        base,
		Source:        r.Source,
		SourceType:    r.SourceType,
		Ingredients:   make([]domain.Ingredient, 0, len(r.Ingredients)),
		Instructions:  make([]domain.Instruction, 0, len(r.Instructions)),
		Reviews:       make([]domain.Review, 0, len(r.Ratings)),
		FavoriteCount: counts.FavoriteCount,
		SaveCount:     counts.SaveCount,
		IsOwner:       isOwner,
		IsFavorited:   flags.Favorited,
		IsSaved:       flags.Saved,
	}

	for _, ing := range r.Ingredients {
		detail.Ingredients = append(detail.Ingredients, domain.Ingredient{
			ID:     ing.ID.String(),
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
			Notes:  ing.Notes,
			Order:  ing.Order,
		})
	}
	slices.SortStableFunc(detail.Ingredients, func(a, b domain.Ingredient) int {
		return a.Order - b.Order
	})

	for _, ins := range r.Instructions {
		detail.Instructions = append(detail.Instructions, domain.Instruction{
			ID:          ins.ID.String(),
			Step:        ins.Step,
			Instruction: ins.Text,
		})
	}
	slices.SortStableFunc(detail.Instructions, func(a, b domain.Instruction) int {
		return a.Step - b.Step
	})

	if n := r.Nutrition; n != nil {
		detail.Nutrition = &domain.NutritionFacts{
			Calories: n.Calories,
			Protein:  n.Protein,
			Carbs:    n.Carbs,
			Fat:      n.Fat,
			Fiber:    n.Fiber,
			Sugar:    n.Sugar,
		}
	}

	for _, rating := range r.Ratings {
		review := domain.Review{
			ID:        rating.ID.String(),
			Value:     rating.Value,
			Comment:   rating.Comment,
			CreatedAt: rating.CreatedAt,
		}
		if rating.User != nil {
			review.User = *toUserSummary(rating.User)
		}
		detail.Reviews = append(detail.Reviews, review)
	}

	return detail
}

func toSharedRecipeResponse(share *entities.SharedRecipe) domain.SharedRecipeResponse {
	res := domain.SharedRecipeResponse{
		ID:         share.ID.String(),
		RecipeID:   share.RecipeID.String(),
		FromUserID: share.FromUserID.String(),
		ToUserID:   share.ToUserID.String(),
		Message:    share.Message,
		CreatedAt:  share.CreatedAt,
	}
	if share.FromUser != nil {
		res.FromUser = toUserSummary(share.FromUser)
	}
	if share.Recipe != nil {
		recipe := toRecipe(share.Recipe)
		res.Recipe = &recipe
	}
	return res
}

func toUserSummary(u *entities.User) *domain.UserSummary {
	return &domain.UserSummary{
		ID:    u.ID.String(),
		Name:  u.Name,
		Image: u.Image,
	}
}

func toCategoryResponse(c *entities.Category) *domain.CategoryResponse {
	return &domain.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}
