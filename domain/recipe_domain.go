package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

// Optional recipe numbers that UpdateRecipeRequest.Clear can reset.
const (
	FieldPrepTime = "prepTime"
	FieldCookTime = "cookTime"
	FieldServings = "servings"
)

var (
	MessageSuccessGetRecipes       = "success get recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageSuccessCreateRecipe     = "recipe created successfully"
	MessageSuccessUpdateRecipe     = "recipe updated successfully"
	MessageSuccessDeleteRecipe     = "recipe deleted successfully"
	MessageSuccessCloneRecipe      = "recipe cloned successfully"
	MessageSuccessToggleVisibility = "recipe visibility updated"
	MessageSuccessToggleFavorite   = "recipe favorite updated"
	MessageSuccessSaveRecipe       = "recipe saved successfully"
	MessageSuccessUnsaveRecipe     = "recipe removed from saved"
	MessageSuccessShareRecipe      = "recipe shared successfully"
	MessageSuccessRateRecipe       = "recipe rated successfully"
	MessageSuccessDeleteRating     = "rating removed successfully"
	MessageSuccessUploadImage      = "recipe image uploaded successfully"
	MessageSuccessGetStats         = "success get recipe stats"
	MessageSuccessGetCategories    = "success get categories"
	MessageSuccessGetTags          = "success get tags"
	MessageSuccessGetShared        = "success get shared recipes"

	MessageFailedGetRecipes       = "failed to get recipes"
	MessageFailedGetRecipeDetail  = "failed to get recipe detail"
	MessageFailedCreateRecipe     = "failed to create recipe"
	MessageFailedUpdateRecipe     = "failed to update recipe"
	MessageFailedDeleteRecipe     = "failed to delete recipe"
	MessageFailedCloneRecipe      = "failed to clone recipe"
	MessageFailedToggleVisibility = "failed to update recipe visibility"
	MessageFailedToggleFavorite   = "failed to update recipe favorite"
	MessageFailedSaveRecipe       = "failed to save recipe"
	MessageFailedUnsaveRecipe     = "failed to remove saved recipe"
	MessageFailedShareRecipe      = "failed to share recipe"
	MessageFailedRateRecipe       = "failed to rate recipe"
	MessageFailedDeleteRating     = "failed to remove rating"
	MessageFailedUploadImage      = "failed to upload recipe image"
	MessageFailedGetStats         = "failed to get recipe stats"
	MessageFailedGetCategories    = "failed to get categories"
	MessageFailedGetTags          = "failed to get tags"
	MessageFailedGetShared        = "failed to get shared recipes"

	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrRecipeAccessDenied  = errors.New("access denied to recipe")
	ErrRecipeAlreadySaved  = errors.New("recipe already saved")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrShareTargetIsSender = errors.New("cannot share a recipe with yourself")
	ErrImageRequired       = errors.New("image file is required")
)

type (
	CreateRecipeRequest struct {
		Title        string               `json:"title" validate:"required,max=100"`
		Description  string               `json:"description" validate:"max=2000"`
		PrepTime     *FlexInt             `json:"prepTime" validate:"omitnil,gt=0"`
		CookTime     *FlexInt             `json:"cookTime" validate:"omitnil,gt=0"`
		Servings     *FlexInt             `json:"servings" validate:"omitnil,gt=0"`
		Difficulty   string               `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
		Cuisine      string               `json:"cuisine" validate:"max=50"`
		CategoryID   string               `json:"categoryId" validate:"omitempty,uuid"`
		Public       bool                 `json:"public"`
		Ingredients  []IngredientRequest  `json:"ingredients" validate:"required,min=1,dive"`
		Instructions []InstructionRequest `json:"instructions" validate:"required,min=1,dive"`
		Tags         []string             `json:"tags" validate:"omitempty,max=20,dive,required,max=50"`
		Nutrition    *NutritionRequest    `json:"nutrition" validate:"omitnil"`
		Source       string               `json:"source" validate:"omitempty,url"`
		SourceType   string               `json:"sourceType" validate:"omitempty,oneof=MANUAL BLOG YOUTUBE"`
	}

	// UpdateRecipeRequest is a partial update; nil fields are left untouched.
	UpdateRecipeRequest struct {
		Title        *string              `json:"title" validate:"omitnil,min=1,max=100"`
		Description  *string              `json:"description" validate:"omitnil,max=2000"`
		PrepTime     *FlexInt             `json:"prepTime" validate:"omitnil,gt=0"`
		CookTime     *FlexInt             `json:"cookTime" validate:"omitnil,gt=0"`
		Servings     *FlexInt             `json:"servings" validate:"omitnil,gt=0"`
		Difficulty   *string              `json:"difficulty" validate:"omitnil,oneof=Easy Medium Hard"`
		Cuisine      *string              `json:"cuisine" validate:"omitnil,max=50"`
		CategoryID   *string              `json:"categoryId" validate:"omitnil,omitempty,uuid"`
		Public       *bool                `json:"public"`
		Ingredients  []IngredientRequest  `json:"ingredients" validate:"omitnil,min=1,dive"`
		Instructions []InstructionRequest `json:"instructions" validate:"omitnil,min=1,dive"`
		Tags         []string             `json:"tags" validate:"omitnil,max=20,dive,required,max=50"`
		Nutrition    *NutritionRequest    `json:"nutrition" validate:"omitnil"`
		// Clear lists optional numbers to reset to null.
		Clear []string `json:"clear" validate:"omitempty,max=3,dive,oneof=prepTime cookTime servings"`
	}

	IngredientRequest struct {
		Name   string    `json:"name" validate:"required,max=100"`
		Amount FlexFloat `json:"amount" validate:"gt=0"`
		Unit   string    `json:"unit" validate:"required,max=30"`
		Notes  string    `json:"notes" validate:"max=200"`
	}

	InstructionRequest struct {
		Instruction string `json:"instruction" validate:"required,max=2000"`
	}

	NutritionRequest struct {
		Calories *float64 `json:"calories" validate:"omitnil,gte=0"`
		Protein  *float64 `json:"protein" validate:"omitnil,gte=0"`
		Carbs    *float64 `json:"carbs" validate:"omitnil,gte=0"`
		Fat      *float64 `json:"fat" validate:"omitnil,gte=0"`
		Fiber    *float64 `json:"fiber" validate:"omitnil,gte=0"`
		Sugar    *float64 `json:"sugar" validate:"omitnil,gte=0"`
	}

	RecipeFilter struct {
		Page        int
		Limit       int
		Search      string
		Category    string
		Cuisine     string
		Difficulty  string
		MaxCookTime int
		Author      string
		Tag         string
		Featured    *bool
		Public      *bool
		SortBy      string
		SortOrder   string
	}

	ShareRecipeRequest struct {
		ToUserID string `json:"toUserId" validate:"required,uuid"`
		Message  string `json:"message" validate:"max=500"`
	}

	RateRecipeRequest struct {
		Value   int    `json:"value" validate:"required,min=1,max=5"`
		Comment string `json:"comment" validate:"max=1000"`
	}

	UploadRecipeImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image"`
	}

	UserSummary struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Image string `json:"image,omitempty"`
	}

	CategoryResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description,omitempty"`
	}

	TagResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		RecipeCount int64  `json:"recipeCount,omitempty"`
	}

	Ingredient struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
		Notes  string  `json:"notes,omitempty"`
		Order  int     `json:"order"`
	}

	Instruction struct {
		ID          string `json:"id"`
		Step        int    `json:"step"`
		Instruction string `json:"instruction"`
	}

	NutritionFacts struct {
		Calories *float64 `json:"calories,omitempty"`
		Protein  *float64 `json:"protein,omitempty"`
		Carbs    *float64 `json:"carbs,omitempty"`
		Fat      *float64 `json:"fat,omitempty"`
		Fiber    *float64 `json:"fiber,omitempty"`
		Sugar    *float64 `json:"sugar,omitempty"`
	}

	Review struct {
		ID        string      `json:"id"`
		Value     int         `json:"value"`
		Comment   string      `json:"comment,omitempty"`
		User      UserSummary `json:"user"`
		CreatedAt time.Time   `json:"createdAt"`
	}

	Recipe struct {
		ID            string            `json:"id"`
		Title         string            `json:"title"`
		Description   string            `json:"description"`
		ImageURL      string            `json:"imageUrl,omitempty"`
		PrepTime      *int              `json:"prepTime,omitempty"`
		CookTime      *int              `json:"cookTime,omitempty"`
		Servings      *int              `json:"servings,omitempty"`
		Difficulty    string            `json:"difficulty"`
		Cuisine       string            `json:"cuisine,omitempty"`
		Public        bool              `json:"public"`
		Featured      bool              `json:"featured"`
		Author        *UserSummary      `json:"author,omitempty"`
		Category      *CategoryResponse `json:"category,omitempty"`
		Tags          []TagResponse     `json:"tags"`
		AverageRating float64           `json:"averageRating"`
		RatingCount   int64             `json:"ratingCount"`
		CreatedAt     time.Time         `json:"createdAt"`
		UpdatedAt     time.Time         `json:"updatedAt"`
	}

	RecipeDetail struct {
		Recipe
		Source        string          `json:"source,omitempty"`
		SourceType    string          `json:"sourceType"`
		Ingredients   []Ingredient    `json:"ingredients"`
		Instructions  []Instruction   `json:"instructions"`
		Nutrition     *NutritionFacts `json:"nutrition,omitempty"`
		Reviews       []Review        `json:"reviews"`
		FavoriteCount int64           `json:"favoriteCount"`
		SaveCount     int64           `json:"saveCount"`
		IsOwner       bool            `json:"isOwner"`
		IsFavorited   bool            `json:"isFavorited"`
		IsSaved       bool            `json:"isSaved"`
	}

	RecipeListResponse struct {
		Recipes    []Recipe           `json:"recipes"`
		Pagination PaginationResponse `json:"pagination"`
	}

	ToggleVisibilityResponse struct {
		Success bool `json:"success"`
		Public  bool `json:"public"`
	}

	ToggleFavoriteResponse struct {
		Favorited bool `json:"favorited"`
	}

	SharedRecipeResponse struct {
		ID         string       `json:"id"`
		RecipeID   string       `json:"recipeId"`
		FromUserID string       `json:"fromUserId"`
		ToUserID   string       `json:"toUserId"`
		Message    string       `json:"message,omitempty"`
		FromUser   *UserSummary `json:"fromUser,omitempty"`
		Recipe     *Recipe      `json:"recipe,omitempty"`
		CreatedAt  time.Time    `json:"createdAt"`
	}

	SharedRecipeListResponse struct {
		Shares     []SharedRecipeResponse `json:"shares"`
		Pagination PaginationResponse     `json:"pagination"`
	}

	RatingResponse struct {
		ID        string    `json:"id"`
		RecipeID  string    `json:"recipeId"`
		Value     int       `json:"value"`
		Comment   string    `json:"comment,omitempty"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	DifficultyCount struct {
		Difficulty string `json:"difficulty"`
		Count      int64  `json:"count"`
	}

	CategoryCount struct {
		CategoryID string `json:"categoryId"`
		Name       string `json:"name"`
		Count      int64  `json:"count"`
	}

	RecipeStats struct {
		TotalRecipes    int64             `json:"totalRecipes"`
		AverageCookTime float64           `json:"averageCookTime"`
		ByDifficulty    []DifficultyCount `json:"byDifficulty"`
		ByCategory      []CategoryCount   `json:"byCategory"`
	}
)
