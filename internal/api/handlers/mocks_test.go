package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recipe-hub/domain"
)

type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	args := m.Called(ctx, req, userID)
	return args.Get(0).(domain.RecipeDetail), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error) {
	args := m.Called(ctx, recipeID, userID)
	return args.Get(0).(domain.RecipeDetail), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) (domain.RecipeListResponse, error) {
	args := m.Called(ctx, filter, userID)
	return args.Get(0).(domain.RecipeListResponse), args.Error(1)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	args := m.Called(ctx, recipeID, req, userID)
	return args.Get(0).(domain.RecipeDetail), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	return m.Called(ctx, recipeID, userID).Error(0)
}

func (m *MockRecipeService) CloneRecipe(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error) {
	args := m.Called(ctx, recipeID, userID)
	return args.Get(0).(domain.RecipeDetail), args.Error(1)
}

func (m *MockRecipeService) ToggleVisibility(ctx context.Context, recipeID string, userID string) (domain.ToggleVisibilityResponse, error) {
	args := m.Called(ctx, recipeID, userID)
	return args.Get(0).(domain.ToggleVisibilityResponse), args.Error(1)
}

func (m *MockRecipeService) ToggleFavorite(ctx context.Context, recipeID string, userID string) (domain.ToggleFavoriteResponse, error) {
	args := m.Called(ctx, recipeID, userID)
	return args.Get(0).(domain.ToggleFavoriteResponse), args.Error(1)
}

func (m *MockRecipeService) SaveRecipe(ctx context.Context, recipeID string, userID string) error {
	return m.Called(ctx, recipeID, userID).Error(0)
}

func (m *MockRecipeService) UnsaveRecipe(ctx context.Context, recipeID string, userID string) error {
	return m.Called(ctx, recipeID, userID).Error(0)
}

func (m *MockRecipeService) ShareRecipe(ctx context.Context, recipeID string, req domain.ShareRecipeRequest, userID string) (domain.SharedRecipeResponse, error) {
	args := m.Called(ctx, recipeID, req, userID)
	return args.Get(0).(domain.SharedRecipeResponse), args.Error(1)
}

func (m *MockRecipeService) RateRecipe(ctx context.Context, recipeID string, req domain.RateRecipeRequest, userID string) (domain.RatingResponse, error) {
	args := m.Called(ctx, recipeID, req, userID)
	return args.Get(0).(domain.RatingResponse), args.Error(1)
}

func (m *MockRecipeService) DeleteRating(ctx context.Context, recipeID string, userID string) error {
	return m.Called(ctx, recipeID, userID).Error(0)
}

func (m *MockRecipeService) UploadRecipeImage(ctx context.Context, recipeID string, req domain.UploadRecipeImageRequest, userID string) (domain.RecipeDetail, error) {
	args := m.Called(ctx, recipeID, req, userID)
	return args.Get(0).(domain.RecipeDetail), args.Error(1)
}

func (m *MockRecipeService) GetSavedRecipes(ctx context.Context, page, limit int, userID string) (domain.RecipeListResponse, error) {
	args := m.Called(ctx, page, limit, userID)
	return args.Get(0).(domain.RecipeListResponse), args.Error(1)
}

func (m *MockRecipeService) GetFavoriteRecipes(ctx context.Context, page, limit int, userID string) (domain.RecipeListResponse, error) {
	args := m.Called(ctx, page, limit, userID)
	return args.Get(0).(domain.RecipeListResponse), args.Error(1)
}

func (m *MockRecipeService) GetSharedWithMe(ctx context.Context, page, limit int, userID string) (domain.SharedRecipeListResponse, error) {
	args := m.Called(ctx, page, limit, userID)
	return args.Get(0).(domain.SharedRecipeListResponse), args.Error(1)
}

func (m *MockRecipeService) GetRecipeStats(ctx context.Context, userID string) (domain.RecipeStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.RecipeStats), args.Error(1)
}

func (m *MockRecipeService) ListCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CategoryResponse), args.Error(1)
}

func (m *MockRecipeService) ListTags(ctx context.Context) ([]domain.TagResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TagResponse), args.Error(1)
}

type MockExtractService struct {
	mock.Mock
}

func (m *MockExtractService) ExtractRecipe(ctx context.Context, req domain.ExtractRecipeRequest) (domain.ExtractedRecipe, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.ExtractedRecipe), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.UserResponse), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.LoginResponse), args.Error(1)
}

func (m *MockUserService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserResponse), args.Error(1)
}
