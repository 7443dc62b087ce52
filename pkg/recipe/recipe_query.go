package recipe

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipe-hub/domain"
	"recipe-hub/entities"
)

const (
	DefaultLimit = 12
	MaxLimit     = 50
)

var sortColumns = map[string]string{
	"createdAt": "recipes.created_at",
	"title":     "recipes.title",
	"cookTime":  "recipes.cook_time",
}

type (
	Condition struct {
		SQL  string
		Args []any
	}

	// ListQuery is the normalized form of a RecipeFilter. It holds no
	// database handle so it can be built and inspected without one.
	ListQuery struct {
		Conditions []Condition
		OrderBy    string
		Page       int
		Limit      int
		Offset     int
	}
)

// BuildListQuery turns filter into conditions, a sort, and a page window.
// actingUserID may be empty for anonymous callers.
func BuildListQuery(filter domain.RecipeFilter, actingUserID string) ListQuery {
	q := ListQuery{
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Offset = (q.Page - 1) * q.Limit

	switch {
	case filter.Public != nil:
		q.add("recipes.public = ?", *filter.Public)
	case actingUserID != "":
		q.add("(recipes.public = ? OR recipes.user_id = ?)", true, actingUserID)
	default:
		q.add("recipes.public = ?", true)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		q.add("(recipes.title ILIKE ? OR recipes.description ILIKE ? OR recipes.cuisine ILIKE ?)", pattern, pattern, pattern)
	}

	if category := strings.TrimSpace(filter.Category); category != "" {
		if id, err := uuid.Parse(category); err == nil {
			q.add("recipes.category_id = ?", id)
		} else {
			q.add("recipes.category_id IN (SELECT id FROM categories WHERE slug = ?)", Slugify(category))
		}
	}

	if cuisine := strings.TrimSpace(filter.Cuisine); cuisine != "" {
		q.add("LOWER(recipes.cuisine) = LOWER(?)", cuisine)
	}

	if difficulty := strings.TrimSpace(filter.Difficulty); difficulty != "" {
		q.add("recipes.difficulty = ?", normalizeDifficulty(difficulty))
	}

	if filter.MaxCookTime > 0 {
		q.add("recipes.cook_time <= ?", filter.MaxCookTime)
	}

	if author := strings.TrimSpace(filter.Author); author != "" {
		if id, err := uuid.Parse(author); err == nil {
			q.add("recipes.user_id = ?", id)
		} else {
			// an author that cannot exist matches nothing
			q.add("1 = 0")
		}
	}

	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		q.add("recipes.id IN (SELECT recipe_tags.recipe_id FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE tags.slug = ?)", Slugify(tag))
	}

	if filter.Featured != nil {
		q.add("recipes.featured = ?", *filter.Featured)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = sortColumns["createdAt"]
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}
	q.OrderBy = column + " " + direction + ", recipes.id"

	return q
}

func (q *ListQuery) add(sql string, args ...any) {
	q.Conditions = append(q.Conditions, Condition{SQL: sql, Args: args})
}

// Scope applies the filter conditions, and nothing else, to db.
func (q ListQuery) Scope(db *gorm.DB) *gorm.DB {
	for _, c := range q.Conditions {
		db = db.Where(c.SQL, c.Args...)
	}
	return db
}

// Paginate applies the sort and page window to db.
func (q ListQuery) Paginate(db *gorm.DB) *gorm.DB {
	return db.Order(q.OrderBy).Offset(q.Offset).Limit(q.Limit)
}

func (q ListQuery) Pagination(total int64) domain.PaginationResponse {
	return domain.PaginationResponse{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: TotalPages(total, q.Limit),
	}
}

func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func normalizeDifficulty(d string) string {
	for _, known := range []string{entities.DifficultyEasy, entities.DifficultyMedium, entities.DifficultyHard} {
		if strings.EqualFold(d, known) {
			return known
		}
	}
	return d
}
