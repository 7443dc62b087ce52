package recipe

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipe-hub/domain"
	"recipe-hub/entities"
)

const recentRatingLimit = 10

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []entities.Tag) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipeAggregate(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipeCounts(ctx context.Context, id uuid.UUID) (RecipeCounts, error)
		GetUserFlags(ctx context.Context, userID, recipeID uuid.UUID) (UserFlags, error)
		ListRecipes(ctx context.Context, q ListQuery) ([]entities.Recipe, int64, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, opts UpdateOptions) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
		UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error
		ToggleVisibility(ctx context.Context, id uuid.UUID) (bool, error)
		ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		SaveRecipe(ctx context.Context, saved *entities.SavedRecipe) error
		UnsaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
		CreateShare(ctx context.Context, share *entities.SharedRecipe) error
		UpsertRating(ctx context.Context, rating *entities.Rating) error
		DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) error
		GetSavedRecipes(ctx context.Context, userID uuid.UUID, q ListQuery) ([]entities.Recipe, int64, error)
		GetFavoriteRecipes(ctx context.Context, userID uuid.UUID, q ListQuery) ([]entities.Recipe, int64, error)
		GetSharedWithUser(ctx context.Context, userID uuid.UUID, q ListQuery) ([]entities.SharedRecipe, int64, error)
		GetRecipeStats(ctx context.Context, q ListQuery) (domain.RecipeStats, error)
		GetCategoryByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
		ListCategories(ctx context.Context) ([]entities.Category, error)
		ListTags(ctx context.Context) ([]TagCount, error)
	}

	RecipeCounts struct {
		RatingCount   int64
		RatingSum     int64
		FavoriteCount int64
		SaveCount     int64
	}

	UserFlags struct {
		Favorited bool
		Saved     bool
	}

	// UpdateOptions says which child collections of the recipe passed to
	// UpdateRecipe replace the stored ones.
	UpdateOptions struct {
		ReplaceIngredients  bool
		ReplaceInstructions bool
		ReplaceNutrition    bool
		ReplaceTags         bool
		Tags                []entities.Tag
	}

	TagCount struct {
		ID          uuid.UUID
		Name        string
		Slug        string
		RecipeCount int64
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		if err := createIngredients(tx, recipe); err != nil {
			return err
		}
		if err := createInstructions(tx, recipe); err != nil {
			return err
		}
		if err := createNutrition(tx, recipe); err != nil {
			return err
		}
		return attachTags(tx, recipe.ID, tags)
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeAggregate(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Instructions", func(db *gorm.DB) *gorm.DB {
			return db.Order("step ASC")
		}).
		Preload("Tags.Tag").
		Preload("Nutrition").
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(recentRatingLimit)
		}).
		Preload("Ratings.User").
		Where("id = ?", id).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeCounts(ctx context.Context, id uuid.UUID) (RecipeCounts, error) {
	var counts RecipeCounts
	err := r.db.WithContext(ctx).Raw(`SELECT
		(SELECT COUNT(*) FROM ratings WHERE recipe_id = @id) AS rating_count,
		(SELECT COALESCE(SUM(value), 0) FROM ratings WHERE recipe_id = @id) AS rating_sum,
		(SELECT COUNT(*) FROM favorites WHERE recipe_id = @id) AS favorite_count,
		(SELECT COUNT(*) FROM saved_recipes WHERE recipe_id = @id) AS save_count`,
		sql.Named("id", id),
	).Scan(&counts).Error
	return counts, err
}

func (r *recipeRepository) GetUserFlags(ctx context.Context, userID, recipeID uuid.UUID) (UserFlags, error) {
	var flags UserFlags
	err := r.db.WithContext(ctx).Raw(`SELECT
		EXISTS (SELECT 1 FROM favorites WHERE user_id = @user AND recipe_id = @recipe) AS favorited,
		EXISTS (SELECT 1 FROM saved_recipes WHERE user_id = @user AND recipe_id = @recipe) AS saved`,
		sql.Named("user", userID),
		sql.Named("recipe", recipeID),
	).Scan(&flags).Error
	return flags, err
}

// ListRecipes runs the count and the page fetch concurrently; the two
// reads are not snapshot-consistent with each other.
func (r *recipeRepository) ListRecipes(ctx context.Context, q ListQuery) ([]entities.Recipe, int64, error) {
	var (
		recipes []entities.Recipe
		total   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return q.Scope(r.db.WithContext(gctx).Model(&entities.Recipe{})).Count(&total).Error
	})
	g.Go(func() error {
		return withListRelations(q.Paginate(q.Scope(r.db.WithContext(gctx)))).Find(&recipes).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, opts UpdateOptions) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Updates never inserts, so a recipe deleted since it was loaded
		// is reported instead of written back.
		res := tx.Model(recipe).
			Select("*").
			Omit(clause.Associations, "id", "created_at").
			Updates(recipe)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if opts.ReplaceIngredients {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Ingredient{}).Error; err != nil {
				return err
			}
			if err := createIngredients(tx, recipe); err != nil {
				return err
			}
		}

		if opts.ReplaceInstructions {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Instruction{}).Error; err != nil {
				return err
			}
			if err := createInstructions(tx, recipe); err != nil {
				return err
			}
		}

		if opts.ReplaceNutrition {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.NutritionInfo{}).Error; err != nil {
				return err
			}
			if err := createNutrition(tx, recipe); err != nil {
				return err
			}
		}

		if opts.ReplaceTags {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeTag{}).Error; err != nil {
				return err
			}
			if err := attachTags(tx, recipe.ID, opts.Tags); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}

func (r *recipeRepository) ToggleVisibility(ctx context.Context, id uuid.UUID) (bool, error) {
	var public bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe entities.Recipe
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "public").
			Where("id = ?", id).
			First(&recipe).Error; err != nil {
			return err
		}

		public = !recipe.Public
		return tx.Model(&entities.Recipe{}).Where("id = ?", id).Update("public", public).Error
	})
	return public, err
}

// ToggleFavorite removes the favorite when present and inserts it
// otherwise. It reports whether the recipe is favorited afterwards.
func (r *recipeRepository) ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var favorited bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&entities.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			favorited = false
			return nil
		}

		favorited = true
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entities.Favorite{ID: uuid.New(), UserID: userID, RecipeID: recipeID}).Error
	})
	return favorited, err
}

func (r *recipeRepository) SaveRecipe(ctx context.Context, saved *entities.SavedRecipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(saved).Error
}

func (r *recipeRepository) UnsaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.SavedRecipe{}).Error
}

func (r *recipeRepository) CreateShare(ctx context.Context, share *entities.SharedRecipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(share).Error
}

// UpsertRating writes the caller's rating for a recipe, replacing any
// earlier one, and reloads rating with the stored row.
func (r *recipeRepository) UpsertRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "comment", "updated_at"}),
			}).
			Create(rating).Error
		if err != nil {
			return err
		}
		return tx.Where("user_id = ? AND recipe_id = ?", rating.UserID, rating.RecipeID).First(rating).Error
	})
}

func (r *recipeRepository) DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Rating{}).Error
}

func (r *recipeRepository) GetSavedRecipes(ctx context.Context, userID uuid.UUID, q ListQuery) ([]entities.Recipe, int64, error) {
	return r.bookmarked(ctx, "saved_recipes", userID, q)
}

func (r *recipeRepository) GetFavoriteRecipes(ctx context.Context, userID uuid.UUID, q ListQuery) ([]entities.Recipe, int64, error) {
	return r.bookmarked(ctx, "favorites", userID, q)
}

func (r *recipeRepository) bookmarked(ctx context.Context, table string, userID uuid.UUID, q ListQuery) ([]entities.Recipe, int64, error) {
	var recipes []entities.Recipe
	var count int64

	base := func() *gorm.DB {
		return q.Scope(r.db.WithContext(ctx).
			Model(&entities.Recipe{}).
			Joins("JOIN "+table+" ON "+table+".recipe_id = recipes.id").
			Where(table+".user_id = ?", userID))
	}

	if err := base().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := withListRelations(base()).
		Order(table + ".created_at DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetSharedWithUser(ctx context.Context, userID uuid.UUID, q ListQuery) ([]entities.SharedRecipe, int64, error) {
	var shares []entities.SharedRecipe
	var count int64

	base := func() *gorm.DB {
		return q.Scope(r.db.WithContext(ctx).
			Model(&entities.SharedRecipe{}).
			Joins("JOIN recipes ON recipes.id = shared_recipes.recipe_id").
			Where("shared_recipes.to_user_id = ?", userID))
	}

	if err := base().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := base().
		Preload("FromUser").
		Preload("Recipe").
		Preload("Recipe.User").
		Order("shared_recipes.created_at DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&shares).Error; err != nil {
		return nil, 0, err
	}

	return shares, count, nil
}

func (r *recipeRepository) GetRecipeStats(ctx context.Context, q ListQuery) (domain.RecipeStats, error) {
	stats := domain.RecipeStats{
		ByDifficulty: []domain.DifficultyCount{},
		ByCategory:   []domain.CategoryCount{},
	}
	base := func() *gorm.DB {
		return q.Scope(r.db.WithContext(ctx).Model(&entities.Recipe{}))
	}

	if err := base().Count(&stats.TotalRecipes).Error; err != nil {
		return stats, err
	}

	if err := base().
		Select("COALESCE(AVG(recipes.cook_time), 0)").
		Row().
		Scan(&stats.AverageCookTime); err != nil {
		return stats, err
	}

	if err := base().
		Select("recipes.difficulty AS difficulty, COUNT(*) AS count").
		Group("recipes.difficulty").
		Order("recipes.difficulty").
		Scan(&stats.ByDifficulty).Error; err != nil {
		return stats, err
	}

	if err := base().
		Select("categories.id AS category_id, categories.name AS name, COUNT(*) AS count").
		Joins("JOIN categories ON categories.id = recipes.category_id").
		Group("categories.id, categories.name").
		Order("count DESC, categories.name").
		Scan(&stats.ByCategory).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

func (r *recipeRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *recipeRepository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	var categories []entities.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *recipeRepository) ListTags(ctx context.Context) ([]TagCount, error) {
	var tags []TagCount
	err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Select("tags.id, tags.name, tags.slug, COUNT(recipe_tags.recipe_id) AS recipe_count").
		Joins("LEFT JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Group("tags.id, tags.name, tags.slug").
		Order("tags.name ASC").
		Scan(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func withListRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Category").
		Preload("Tags.Tag").
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "recipe_id", "value")
		})
}

func createIngredients(tx *gorm.DB, recipe *entities.Recipe) error {
	if len(recipe.Ingredients) == 0 {
		return nil
	}
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].RecipeID = recipe.ID
	}
	return tx.Create(&recipe.Ingredients).Error
}

func createInstructions(tx *gorm.DB, recipe *entities.Recipe) error {
	if len(recipe.Instructions) == 0 {
		return nil
	}
	for i := range recipe.Instructions {
		recipe.Instructions[i].RecipeID = recipe.ID
	}
	return tx.Create(&recipe.Instructions).Error
}

func createNutrition(tx *gorm.DB, recipe *entities.Recipe) error {
	if recipe.Nutrition == nil {
		return nil
	}
	recipe.Nutrition.RecipeID = recipe.ID
	return tx.Create(recipe.Nutrition).Error
}

// attachTags upserts tags by slug, reusing rows that already exist, and
// links each one to the recipe once.
func attachTags(tx *gorm.DB, recipeID uuid.UUID, tags []entities.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	rows := make([]entities.Tag, 0, len(tags))
	slugs := make([]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, entities.Tag{ID: uuid.New(), Name: t.Name, Slug: t.Slug})
		slugs = append(slugs, t.Slug)
	}

	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return err
	}

	var stored []entities.Tag
	if err := tx.Where("slug IN ?", slugs).Find(&stored).Error; err != nil {
		return err
	}

	links := make([]entities.RecipeTag, 0, len(stored))
	for _, t := range stored {
		links = append(links, entities.RecipeTag{RecipeID: recipeID, TagID: t.ID})
	}
	return tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).Error
}
