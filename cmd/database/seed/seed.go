package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipe-hub/domain"
	"recipe-hub/entities"
	"recipe-hub/pkg/recipe"
)

const (
	demoEmail    = "demo@recipe-hub.local"
	demoPassword = "demo-password"
)

var (
	categories = []string{"Breakfast", "Lunch", "Dinner", "Dessert"}
	tags       = []string{"Vegetarian", "Vegan", "Gluten Free", "Quick & Easy"}
)

// Seed inserts the base catalog and a demo account with two public recipes.
// Running it again leaves existing rows untouched.
func Seed(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	for _, name := range categories {
		category := entities.Category{ID: uuid.New(), Name: name, Slug: recipe.Slugify(name)}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	for _, name := range tags {
		tag := entities.Tag{ID: uuid.New(), Name: name, Slug: recipe.Slugify(name)}
		if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).Create(&tag).Error; err != nil {
			return fmt.Errorf("seed tag %q: %w", name, err)
		}
	}

	demo, err := demoUser(db)
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&entities.Recipe{}).Where("user_id = ?", demo.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("demo recipes already present, skipping")
		return nil
	}

	var breakfast, dinner entities.Category
	if err := db.Where("slug = ?", "breakfast").First(&breakfast).Error; err != nil {
		return err
	}
	if err := db.Where("slug = ?", "dinner").First(&dinner).Error; err != nil {
		return err
	}

	repo := recipe.NewRecipeRepository(db)
	for _, r := range demoRecipes(demo.ID, breakfast.ID, dinner.ID) {
		for i := range r.recipe.Ingredients {
			r.recipe.Ingredients[i].ID = uuid.New()
		}
		for i := range r.recipe.Instructions {
			r.recipe.Instructions[i].ID = uuid.New()
		}
		if err := repo.CreateRecipe(ctx, r.recipe, r.tags); err != nil {
			return fmt.Errorf("seed recipe %q: %w", r.recipe.Title, err)
		}
	}

	log.Info().Str("email", demoEmail).Msg("database seeded")
	return nil
}

func demoUser(db *gorm.DB) (*entities.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := entities.User{ID: uuid.New(), Name: "Demo Cook", Email: demoEmail, Password: string(hashed), Role: domain.RoleUser}
	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("seed demo user: %w", err)
	}

	var stored entities.User
	if err := db.Where("email = ?", demoEmail).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

type seededRecipe struct {
	recipe *entities.Recipe
	tags   []entities.Tag
}

func tagRows(names ...string) []entities.Tag {
	rows := make([]entities.Tag, 0, len(names))
	for _, name := range names {
		rows = append(rows, entities.Tag{Name: name, Slug: recipe.Slugify(name)})
	}
	return rows
}

func intPtr(n int) *int { return &n }

func demoRecipes(userID, breakfastID, dinnerID uuid.UUID) []seededRecipe {
	return []seededRecipe{
		{
			recipe: &entities.Recipe{
				ID:          uuid.New(),
				UserID:      userID,
				CategoryID:  &breakfastID,
				Title:       "Fluffy Pancakes",
				Description: "Thick pancakes for a slow weekend breakfast.",
				PrepTime:    intPtr(10),
				CookTime:    intPtr(15),
				Servings:    intPtr(4),
				Difficulty:  entities.DifficultyEasy,
				Cuisine:     "American",
				Public:      true,
				Featured:    true,
				SourceType:  entities.SourceManual,
				Ingredients: []entities.Ingredient{
					{Name: "Flour", Amount: 200, Unit: "g", Order: 0},
					{Name: "Milk", Amount: 300, Unit: "ml", Order: 1},
					{Name: "Egg", Amount: 2, Unit: "pcs", Order: 2},
					{Name: "Baking powder", Amount: 2, Unit: "tsp", Order: 3},
				},
				Instructions: []entities.Instruction{
					{Step: 1, Text: "Whisk the dry ingredients together."},
					{Step: 2, Text: "Beat in the milk and eggs until smooth."},
					{Step: 3, Text: "Cook ladlefuls on a hot buttered pan until golden."},
				},
			},
			tags: tagRows("Vegetarian", "Quick & Easy"),
		},
		{
			recipe: &entities.Recipe{
				ID:          uuid.New(),
				UserID:      userID,
				CategoryID:  &dinnerID,
				Title:       "Tomato Lentil Soup",
				Description: "A one pot soup that keeps well.",
				PrepTime:    intPtr(15),
				CookTime:    intPtr(40),
				Servings:    intPtr(6),
				Difficulty:  entities.DifficultyMedium,
				Cuisine:     "Mediterranean",
				Public:      true,
				SourceType:  entities.SourceManual,
				Ingredients: []entities.Ingredient{
					{Name: "Red lentils", Amount: 250, Unit: "g", Order: 0},
					{Name: "Chopped tomatoes", Amount: 400, Unit: "g", Order: 1},
					{Name: "Onion", Amount: 1, Unit: "pcs", Notes: "diced", Order: 2},
					{Name: "Vegetable stock", Amount: 1.2, Unit: "l", Order: 3},
				},
				Instructions: []entities.Instruction{
					{Step: 1, Text: "Soften the onion in a little oil."},
					{Step: 2, Text: "Add lentils, tomatoes and stock and simmer for 35 minutes."},
					{Step: 3, Text: "Blend until smooth and season to taste."},
				},
			},
			tags: tagRows("Vegan", "Gluten Free"),
		},
	}
}
