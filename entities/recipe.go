package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"

	SourceManual  = "MANUAL"
	SourceBlog    = "BLOG"
	SourceYouTube = "YOUTUBE"
)

type Recipe struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"categoryId,omitempty"`
	Title       string     `gorm:"type:varchar(100);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	PrepTime    *int       `json:"prepTime,omitempty"`
	CookTime    *int       `gorm:"index" json:"cookTime,omitempty"`
	Servings    *int       `json:"servings,omitempty"`
	Difficulty  string     `gorm:"type:varchar(10);not null;default:'Medium';index" json:"difficulty"`
	Cuisine     string     `gorm:"type:varchar(50)" json:"cuisine,omitempty"`
	Public      bool       `gorm:"not null;default:false;index" json:"public"`
	Featured    bool       `gorm:"not null;default:false" json:"featured"`
	Source      string     `json:"source,omitempty"`
	SourceType  string     `gorm:"type:varchar(10);not null;default:'MANUAL'" json:"sourceType"`

	User         *User          `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Category     *Category      `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Ingredients  []Ingredient   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Instructions []Instruction  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"instructions,omitempty"`
	Tags         []RecipeTag    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Nutrition    *NutritionInfo `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"nutrition,omitempty"`
	Ratings      []Rating       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ratings,omitempty"`
	Favorites    []Favorite     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Saves        []SavedRecipe  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Shares       []SharedRecipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

// Ingredient rows are ordered by Order, which is the submission index.
type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipeId"`
	Name     string    `gorm:"not null" json:"name"`
	Amount   float64   `gorm:"not null" json:"amount"`
	Unit     string    `gorm:"type:varchar(30);not null" json:"unit"`
	Notes    string    `json:"notes,omitempty"`
	Order    int       `gorm:"column:position;not null" json:"order"`
}

type Instruction struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipeId"`
	Step     int       `gorm:"not null" json:"step"`
	Text     string    `gorm:"column:content;type:text;not null" json:"instruction"`
}

type NutritionInfo struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"recipeId"`
	Calories *float64  `json:"calories,omitempty"`
	Protein  *float64  `json:"protein,omitempty"`
	Carbs    *float64  `json:"carbs,omitempty"`
	Fat      *float64  `json:"fat,omitempty"`
	Fiber    *float64  `json:"fiber,omitempty"`
	Sugar    *float64  `json:"sugar,omitempty"`
}

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"type:varchar(60);uniqueIndex;not null" json:"slug"`
	Description string    `json:"description,omitempty"`
	Timestamp
}

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"type:varchar(50);not null" json:"name"`
	Slug string    `gorm:"type:varchar(60);uniqueIndex;not null" json:"slug"`
}

type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipeId"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"tagId"`

	Tag *Tag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag,omitempty"`
}

type Rating struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_user_recipe" json:"userId"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_user_recipe;index" json:"recipeId"`
	Value    int       `gorm:"not null;check:value >= 1 AND value <= 5" json:"value"`
	Comment  string    `gorm:"type:text" json:"comment,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Timestamp
}

type SavedRecipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_recipe" json:"userId"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_recipe;index" json:"recipeId"`
	CreatedAt time.Time `gorm:"type:timestamp;autoCreateTime" json:"createdAt"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe" json:"userId"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe;index" json:"recipeId"`
	CreatedAt time.Time `gorm:"type:timestamp;autoCreateTime" json:"createdAt"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

type SharedRecipe struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"recipeId"`
	FromUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"fromUserId"`
	ToUserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"toUserId"`
	Message    string    `gorm:"type:text" json:"message,omitempty"`
	CreatedAt  time.Time `gorm:"type:timestamp;autoCreateTime" json:"createdAt"`

	FromUser *User   `gorm:"foreignKey:FromUserID;constraint:OnDelete:CASCADE" json:"fromUser,omitempty"`
	ToUser   *User   `gorm:"foreignKey:ToUserID;constraint:OnDelete:CASCADE" json:"toUser,omitempty"`
	Recipe   *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}
