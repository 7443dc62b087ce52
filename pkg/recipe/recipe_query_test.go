package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"recipe-hub/domain"
	"recipe-hub/entities"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildListQueryDefaults(t *testing.T) {
	q := BuildListQuery(domain.RecipeFilter{}, "")

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Equal(t, "recipes.created_at DESC, recipes.id", q.OrderBy)
	require.Len(t, q.Conditions, 1)
	assert.Equal(t, "recipes.public = ?", q.Conditions[0].SQL)
	assert.Equal(t, []any{true}, q.Conditions[0].Args)
}

func TestBuildListQueryPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{name: "second page", page: 2, limit: 12, wantPage: 2, wantLimit: 12, wantOffset: 12},
		{name: "limit capped", page: 1, limit: 500, wantPage: 1, wantLimit: MaxLimit, wantOffset: 0},
		{name: "negative page", page: -3, limit: 5, wantPage: 1, wantLimit: 5, wantOffset: 0},
		{name: "zero limit", page: 3, limit: 0, wantPage: 3, wantLimit: DefaultLimit, wantOffset: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildListQuery(domain.RecipeFilter{Page: tt.page, Limit: tt.limit}, "")
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantOffset, q.Offset)
		})
	}
}

func TestBuildListQueryVisibility(t *testing.T) {
	actor := uuid.NewString()

	tests := []struct {
		name     string
		filter   domain.RecipeFilter
		actor    string
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "anonymous sees public only",
			wantSQL:  "recipes.public = ?",
			wantArgs: []any{true},
		},
		{
			name:     "signed in sees public and own",
			actor:    actor,
			wantSQL:  "(recipes.public = ? OR recipes.user_id = ?)",
			wantArgs: []any{true, actor},
		},
		{
			name:     "explicit flag is strict",
			filter:   domain.RecipeFilter{Public: boolPtr(false)},
			actor:    actor,
			wantSQL:  "recipes.public = ?",
			wantArgs: []any{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildListQuery(tt.filter, tt.actor)
			require.NotEmpty(t, q.Conditions)
			assert.Equal(t, tt.wantSQL, q.Conditions[0].SQL)
			assert.Equal(t, tt.wantArgs, q.Conditions[0].Args)
		})
	}
}

func TestBuildListQueryFilters(t *testing.T) {
	categoryID := uuid.New()
	authorID := uuid.New()

	tests := []struct {
		name     string
		filter   domain.RecipeFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "search is escaped and grouped",
			filter:   domain.RecipeFilter{Search: " 50%_off "},
			wantSQL:  "(recipes.title ILIKE ? OR recipes.description ILIKE ? OR recipes.cuisine ILIKE ?)",
			wantArgs: []any{`%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`},
		},
		{
			name:     "category by id",
			filter:   domain.RecipeFilter{Category: categoryID.String()},
			wantSQL:  "recipes.category_id = ?",
			wantArgs: []any{categoryID},
		},
		{
			name:     "category by slug",
			filter:   domain.RecipeFilter{Category: "Quick Dinners"},
			wantSQL:  "recipes.category_id IN (SELECT id FROM categories WHERE slug = ?)",
			wantArgs: []any{"quick-dinners"},
		},
		{
			name:     "cuisine ignores case",
			filter:   domain.RecipeFilter{Cuisine: "Italian"},
			wantSQL:  "LOWER(recipes.cuisine) = LOWER(?)",
			wantArgs: []any{"Italian"},
		},
		{
			name:     "difficulty is normalized",
			filter:   domain.RecipeFilter{Difficulty: "easy"},
			wantSQL:  "recipes.difficulty = ?",
			wantArgs: []any{entities.DifficultyEasy},
		},
		{
			name:     "max cook time",
			filter:   domain.RecipeFilter{MaxCookTime: 30},
			wantSQL:  "recipes.cook_time <= ?",
			wantArgs: []any{30},
		},
		{
			name:     "author",
			filter:   domain.RecipeFilter{Author: authorID.String()},
			wantSQL:  "recipes.user_id = ?",
			wantArgs: []any{authorID},
		},
		{
			name:    "unknown author matches nothing",
			filter:  domain.RecipeFilter{Author: "not-a-user"},
			wantSQL: "1 = 0",
		},
		{
			name:     "tag by slug",
			filter:   domain.RecipeFilter{Tag: "Quick & Easy"},
			wantSQL:  "recipes.id IN (SELECT recipe_tags.recipe_id FROM recipe_tags JOIN tags ON tags.id = recipe_tags.tag_id WHERE tags.slug = ?)",
			wantArgs: []any{"quick-easy"},
		},
		{
			name:     "featured",
			filter:   domain.RecipeFilter{Featured: boolPtr(true)},
			wantSQL:  "recipes.featured = ?",
			wantArgs: []any{true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := BuildListQuery(tt.filter, "")
			require.Len(t, q.Conditions, 2)
			assert.Equal(t, tt.wantSQL, q.Conditions[1].SQL)
			if tt.wantArgs == nil {
				assert.Empty(t, q.Conditions[1].Args)
			} else {
				assert.Equal(t, tt.wantArgs, q.Conditions[1].Args)
			}
		})
	}
}

func TestBuildListQuerySort(t *testing.T) {
	tests := []struct {
		sortBy    string
		sortOrder string
		want      string
	}{
		{"title", "asc", "recipes.title ASC, recipes.id"},
		{"cookTime", "ASC", "recipes.cook_time ASC, recipes.id"},
		{"createdAt", "desc", "recipes.created_at DESC, recipes.id"},
		{"password", "sideways", "recipes.created_at DESC, recipes.id"},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy+"_"+tt.sortOrder, func(t *testing.T) {
			q := BuildListQuery(domain.RecipeFilter{SortBy: tt.sortBy, SortOrder: tt.sortOrder}, "")
			assert.Equal(t, tt.want, q.OrderBy)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(3), TotalPages(25, 12))
	assert.Equal(t, int64(2), TotalPages(24, 12))
	assert.Equal(t, int64(1), TotalPages(1, 12))
	assert.Equal(t, int64(0), TotalPages(0, 12))
	assert.Equal(t, int64(0), TotalPages(10, 0))
}

func TestListQueryRendersSQL(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=recipes dbname=recipes sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	actor := uuid.NewString()
	q := BuildListQuery(domain.RecipeFilter{
		Page:   2,
		Limit:  12,
		Search: "soup",
	}, actor)

	var recipes []entities.Recipe
	stmt := q.Paginate(q.Scope(db.Model(&entities.Recipe{}))).Find(&recipes).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `FROM "recipes"`)
	assert.Contains(t, sql, "recipes.public = $1 OR recipes.user_id = $2")
	assert.Contains(t, sql, "recipes.title ILIKE $3 OR recipes.description ILIKE $4 OR recipes.cuisine ILIKE $5")
	assert.Contains(t, sql, "ORDER BY recipes.created_at DESC, recipes.id")
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
	assert.Equal(t, []any{true, actor, "%soup%", "%soup%", "%soup%"}, stmt.Vars[:5])
}
