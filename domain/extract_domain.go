package domain

import "errors"

const (
	ExtractTypeBlog    = "blog"
	ExtractTypeYouTube = "youtube"
)

var (
	MessageSuccessExtractRecipe = "recipe extracted successfully"
	MessageFailedExtractRecipe  = "failed to extract recipe"

	ErrUnsupportedSource  = errors.New("unsupported source url")
	ErrVideoNotFound      = errors.New("video not found")
	ErrExtractionFailed   = errors.New("recipe extraction failed")
	ErrAIProviderDisabled = errors.New("ai provider is not configured")
)

type (
	ExtractRecipeRequest struct {
		URL  string `json:"url" validate:"required,url,startswith=http"`
		Type string `json:"type" validate:"required,oneof=blog youtube"`
	}

	ExtractedIngredient struct {
		Name   string  `json:"name"`
		Amount float64 `json:"amount"`
		Unit   string  `json:"unit"`
		Notes  string  `json:"notes,omitempty"`
	}

	ExtractedRecipe struct {
		Title        string                `json:"title"`
		Description  string                `json:"description"`
		PrepTime     *int                  `json:"prepTime,omitempty"`
		CookTime     *int                  `json:"cookTime,omitempty"`
		Servings     *int                  `json:"servings,omitempty"`
		Difficulty   string                `json:"difficulty,omitempty"`
		Cuisine      string                `json:"cuisine,omitempty"`
		Ingredients  []ExtractedIngredient `json:"ingredients"`
		Instructions []string              `json:"instructions"`
		Tags         []string              `json:"tags,omitempty"`
		Source       string                `json:"source"`
		SourceType   string                `json:"sourceType"`
	}
)
