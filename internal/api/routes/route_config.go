package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"recipe-hub/internal/api/handlers"
	"recipe-hub/internal/middleware"
	"recipe-hub/pkg/jwt"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	RecipeFormHandler handlers.RecipeFormHandler
	ExtractHandler    handlers.ExtractHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.SecurityHeaders())
	c.GuestRoute()
	c.User()
	c.Recipes()
	c.Catalog()
	c.FormActions()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", auth, c.UserHandler.Me)
		user.Get("/me/saved", auth, c.RecipeHandler.GetSavedRecipes)
		user.Get("/me/favorites", auth, c.RecipeHandler.GetFavoriteRecipes)
		user.Get("/me/shared", auth, c.RecipeHandler.GetSharedWithMe)
	}
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/v1/recipes")

	// static paths first so they never match :id
	recipes.Get("", optional, c.RecipeHandler.ListRecipes)
	recipes.Get("/stats", optional, c.RecipeHandler.GetRecipeStats)
	recipes.Post("/extract", auth, c.Middleware.RateLimiter(5, time.Minute), c.ExtractHandler.ExtractRecipe)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)

	recipes.Get("/:id", optional, c.RecipeHandler.GetRecipe)
	recipes.Put("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/clone", auth, c.RecipeHandler.CloneRecipe)
	recipes.Patch("/:id/visibility", auth, c.RecipeHandler.ToggleVisibility)
	recipes.Post("/:id/favorite", auth, c.RecipeHandler.ToggleFavorite)
	recipes.Post("/:id/save", auth, c.RecipeHandler.SaveRecipe)
	recipes.Delete("/:id/save", auth, c.RecipeHandler.UnsaveRecipe)
	recipes.Post("/:id/share", auth, c.RecipeHandler.ShareRecipe)
	recipes.Put("/:id/rating", auth, c.RecipeHandler.RateRecipe)
	recipes.Delete("/:id/rating", auth, c.RecipeHandler.DeleteRating)
	recipes.Post("/:id/image", auth, c.RecipeHandler.UploadRecipeImage)
}

func (c *Config) Catalog() {
	c.App.Get("/api/v1/categories", c.RecipeHandler.ListCategories)
	c.App.Get("/api/v1/tags", c.RecipeHandler.ListTags)
}

func (c *Config) FormActions() {
	actions := c.App.Group("/actions/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	{
		actions.Post("", c.RecipeFormHandler.Create)
		actions.Post("/:id", c.RecipeFormHandler.Update)
		actions.Post("/:id/delete", c.RecipeFormHandler.Delete)
		actions.Post("/:id/clone", c.RecipeFormHandler.Clone)
		actions.Post("/:id/favorite", c.RecipeFormHandler.ToggleFavorite)
		actions.Post("/:id/visibility", c.RecipeFormHandler.ToggleVisibility)
	}
}
