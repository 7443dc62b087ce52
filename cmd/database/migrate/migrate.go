package migration

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"recipe-hub/entities"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("create uuid-ossp extension: %w", err)
	}

	models := []any{
		&entities.User{},
		&entities.Category{},
		&entities.Tag{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.Instruction{},
		&entities.NutritionInfo{},
		&entities.RecipeTag{},
		&entities.Rating{},
		&entities.SavedRecipe{},
		&entities.Favorite{},
		&entities.SharedRecipe{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	log.Info().Int("tables", len(models)).Msg("database migration complete")
	return nil
}
