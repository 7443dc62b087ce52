package recipe

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recipe-hub/domain"
	"recipe-hub/entities"
)

type pair struct {
	userID   uuid.UUID
	recipeID uuid.UUID
}

// fakeRecipeRepository keeps recipes in memory. It ignores the SQL
// conditions of a ListQuery and only applies its page window.
type fakeRecipeRepository struct {
	mu         sync.Mutex
	clock      time.Time
	recipes    map[uuid.UUID]*entities.Recipe
	tags       map[string]entities.Tag
	recipeTags map[uuid.UUID][]uuid.UUID
	categories map[uuid.UUID]entities.Category
	users      map[uuid.UUID]*entities.User
	ratings    []entities.Rating
	favorites  map[pair]time.Time
	saved      map[pair]time.Time
	shares     []entities.SharedRecipe
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		clock:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		recipes:    map[uuid.UUID]*entities.Recipe{},
		tags:       map[string]entities.Tag{},
		recipeTags: map[uuid.UUID][]uuid.UUID{},
		categories: map[uuid.UUID]entities.Category{},
		users:      map[uuid.UUID]*entities.User{},
		favorites:  map[pair]time.Time{},
		saved:      map[pair]time.Time{},
	}
}

func (f *fakeRecipeRepository) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRecipeRepository) addUser(name string) *entities.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &entities.User{ID: uuid.New(), Name: name, Email: name + "@example.com", Role: domain.RoleUser}
	f.users[u.ID] = u
	return u
}

func (f *fakeRecipeRepository) addCategory(name string) entities.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := entities.Category{ID: uuid.New(), Name: name, Slug: Slugify(name)}
	f.categories[c.ID] = c
	return c
}

func (f *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe, tags []entities.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.tick()
	recipe.CreatedAt, recipe.UpdatedAt = now, now

	stored := *recipe
	stored.Ingredients = slices.Clone(recipe.Ingredients)
	stored.Instructions = slices.Clone(recipe.Instructions)
	if recipe.Nutrition != nil {
		n := *recipe.Nutrition
		stored.Nutrition = &n
	}
	stored.Tags = nil
	f.recipes[recipe.ID] = &stored
	f.attachTags(recipe.ID, tags)
	return nil
}

func (f *fakeRecipeRepository) attachTags(recipeID uuid.UUID, tags []entities.Tag) {
	for _, t := range tags {
		existing, ok := f.tags[t.Slug]
		if !ok {
			existing = entities.Tag{ID: uuid.New(), Name: t.Name, Slug: t.Slug}
			f.tags[t.Slug] = existing
		}
		if !slices.Contains(f.recipeTags[recipeID], existing.ID) {
			f.recipeTags[recipeID] = append(f.recipeTags[recipeID], existing.ID)
		}
	}
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id uuid.UUID) (*entities.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	row := *stored
	row.Ingredients, row.Instructions, row.Nutrition = nil, nil, nil
	return &row, nil
}

func (f *fakeRecipeRepository) GetRecipeAggregate(_ context.Context, id uuid.UUID) (*entities.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	agg := f.withRelations(stored)
	agg.Ingredients = slices.Clone(stored.Ingredients)
	agg.Instructions = slices.Clone(stored.Instructions)

	agg.Ratings = nil
	for i := len(f.ratings) - 1; i >= 0 && len(agg.Ratings) < recentRatingLimit; i-- {
		if f.ratings[i].RecipeID == id {
			r := f.ratings[i]
			r.User = f.users[r.UserID]
			agg.Ratings = append(agg.Ratings, r)
		}
	}
	return agg, nil
}

// withRelations copies a stored row and attaches author, category, tags
// and the rating values used by listings.
func (f *fakeRecipeRepository) withRelations(stored *entities.Recipe) *entities.Recipe {
	r := *stored
	r.User = f.users[stored.UserID]
	if stored.CategoryID != nil {
		if c, ok := f.categories[*stored.CategoryID]; ok {
			r.Category = &c
		}
	}
	r.Tags = nil
	for _, tagID := range f.recipeTags[stored.ID] {
		for _, t := range f.tags {
			if t.ID == tagID {
				tag := t
				r.Tags = append(r.Tags, entities.RecipeTag{RecipeID: stored.ID, TagID: tagID, Tag: &tag})
			}
		}
	}
	r.Ratings = nil
	for _, rating := range f.ratings {
		if rating.RecipeID == stored.ID {
			r.Ratings = append(r.Ratings, entities.Rating{ID: rating.ID, RecipeID: rating.RecipeID, Value: rating.Value})
		}
	}
	return &r
}

func (f *fakeRecipeRepository) GetRecipeCounts(_ context.Context, id uuid.UUID) (RecipeCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var counts RecipeCounts
	for _, r := range f.ratings {
		if r.RecipeID == id {
			counts.RatingCount++
			counts.RatingSum += int64(r.Value)
		}
	}
	for p := range f.favorites {
		if p.recipeID == id {
			counts.FavoriteCount++
		}
	}
	for p := range f.saved {
		if p.recipeID == id {
			counts.SaveCount++
		}
	}
	return counts, nil
}

func (f *fakeRecipeRepository) GetUserFlags(_ context.Context, userID, recipeID uuid.UUID) (UserFlags, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, favorited := f.favorites[pair{userID, recipeID}]
	_, saved := f.saved[pair{userID, recipeID}]
	return UserFlags{Favorited: favorited, Saved: saved}, nil
}

func (f *fakeRecipeRepository) ListRecipes(_ context.Context, q ListQuery) ([]entities.Recipe, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]*entities.Recipe, 0, len(f.recipes))
	for _, r := range f.recipes {
		all = append(all, r)
	}
	slices.SortFunc(all, func(a, b *entities.Recipe) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return f.page(all, q), int64(len(all)), nil
}

func (f *fakeRecipeRepository) page(rows []*entities.Recipe, q ListQuery) []entities.Recipe {
	out := []entities.Recipe{}
	for i := q.Offset; i < len(rows) && i < q.Offset+q.Limit; i++ {
		out = append(out, *f.withRelations(rows[i]))
	}
	return out
}

func (f *fakeRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe, opts UpdateOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.recipes[recipe.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	updated := *recipe
	updated.UpdatedAt = f.tick()
	updated.Ingredients = stored.Ingredients
	updated.Instructions = stored.Instructions
	updated.Nutrition = stored.Nutrition
	updated.Tags = nil

	if opts.ReplaceIngredients {
		updated.Ingredients = slices.Clone(recipe.Ingredients)
	}
	if opts.ReplaceInstructions {
		updated.Instructions = slices.Clone(recipe.Instructions)
	}
	if opts.ReplaceNutrition {
		updated.Nutrition = recipe.Nutrition
	}
	if opts.ReplaceTags {
		delete(f.recipeTags, recipe.ID)
		f.attachTags(recipe.ID, opts.Tags)
	}

	f.recipes[recipe.ID] = &updated
	return nil
}

func (f *fakeRecipeRepository) DeleteRecipe(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.recipes, id)
	delete(f.recipeTags, id)
	f.ratings = slices.DeleteFunc(f.ratings, func(r entities.Rating) bool { return r.RecipeID == id })
	for p := range f.favorites {
		if p.recipeID == id {
			delete(f.favorites, p)
		}
	}
	for p := range f.saved {
		if p.recipeID == id {
			delete(f.saved, p)
		}
	}
	return nil
}

func (f *fakeRecipeRepository) UpdateImageURL(_ context.Context, id uuid.UUID, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.recipes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.ImageURL = imageURL
	return nil
}

func (f *fakeRecipeRepository) ToggleVisibility(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.recipes[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	stored.Public = !stored.Public
	return stored.Public, nil
}

func (f *fakeRecipeRepository) ToggleFavorite(_ context.Context, userID, recipeID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := pair{userID, recipeID}
	if _, ok := f.favorites[key]; ok {
		delete(f.favorites, key)
		return false, nil
	}
	f.favorites[key] = f.tick()
	return true, nil
}

func (f *fakeRecipeRepository) SaveRecipe(_ context.Context, saved *entities.SavedRecipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := pair{saved.UserID, saved.RecipeID}
	if _, ok := f.saved[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.saved[key] = f.tick()
	return nil
}

func (f *fakeRecipeRepository) UnsaveRecipe(_ context.Context, userID, recipeID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.saved, pair{userID, recipeID})
	return nil
}

func (f *fakeRecipeRepository) CreateShare(_ context.Context, share *entities.SharedRecipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	share.CreatedAt = f.tick()
	f.shares = append(f.shares, *share)
	return nil
}

func (f *fakeRecipeRepository) UpsertRating(_ context.Context, rating *entities.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.tick()
	for i := range f.ratings {
		if f.ratings[i].UserID == rating.UserID && f.ratings[i].RecipeID == rating.RecipeID {
			f.ratings[i].Value = rating.Value
			f.ratings[i].Comment = rating.Comment
			f.ratings[i].UpdatedAt = now
			*rating = f.ratings[i]
			return nil
		}
	}
	rating.CreatedAt, rating.UpdatedAt = now, now
	f.ratings = append(f.ratings, *rating)
	return nil
}

func (f *fakeRecipeRepository) DeleteRating(_ context.Context, userID, recipeID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ratings = slices.DeleteFunc(f.ratings, func(r entities.Rating) bool {
		return r.UserID == userID && r.RecipeID == recipeID
	})
	return nil
}

func (f *fakeRecipeRepository) GetSavedRecipes(_ context.Context, userID uuid.UUID, q ListQuery) ([]entities.Recipe, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookmarked(f.saved, userID, q)
}

func (f *fakeRecipeRepository) GetFavoriteRecipes(_ context.Context, userID uuid.UUID, q ListQuery) ([]entities.Recipe, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookmarked(f.favorites, userID, q)
}

func (f *fakeRecipeRepository) bookmarked(marks map[pair]time.Time, userID uuid.UUID, q ListQuery) ([]entities.Recipe, int64, error) {
	type mark struct {
		recipe *entities.Recipe
		at     time.Time
	}
	var found []mark
	for p, at := range marks {
		if r, ok := f.recipes[p.recipeID]; ok && p.userID == userID {
			found = append(found, mark{r, at})
		}
	}
	slices.SortFunc(found, func(a, b mark) int { return b.at.Compare(a.at) })

	rows := make([]*entities.Recipe, 0, len(found))
	for _, m := range found {
		rows = append(rows, m.recipe)
	}
	return f.page(rows, q), int64(len(rows)), nil
}

func (f *fakeRecipeRepository) GetSharedWithUser(_ context.Context, userID uuid.UUID, q ListQuery) ([]entities.SharedRecipe, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []entities.SharedRecipe
	for i := len(f.shares) - 1; i >= 0; i-- {
		s := f.shares[i]
		if s.ToUserID != userID {
			continue
		}
		s.FromUser = f.users[s.FromUserID]
		if r, ok := f.recipes[s.RecipeID]; ok {
			s.Recipe = f.withRelations(r)
		}
		out = append(out, s)
	}
	total := int64(len(out))
	if q.Offset >= len(out) {
		return []entities.SharedRecipe{}, total, nil
	}
	return out[q.Offset:min(len(out), q.Offset+q.Limit)], total, nil
}

func (f *fakeRecipeRepository) GetRecipeStats(_ context.Context, _ ListQuery) (domain.RecipeStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stats := domain.RecipeStats{ByDifficulty: []domain.DifficultyCount{}, ByCategory: []domain.CategoryCount{}}
	var cookSum, cookCount int
	byDifficulty := map[string]int64{}
	for _, r := range f.recipes {
		stats.TotalRecipes++
		byDifficulty[r.Difficulty]++
		if r.CookTime != nil {
			cookSum += *r.CookTime
			cookCount++
		}
	}
	if cookCount > 0 {
		stats.AverageCookTime = float64(cookSum) / float64(cookCount)
	}
	for d, n := range byDifficulty {
		stats.ByDifficulty = append(stats.ByDifficulty, domain.DifficultyCount{Difficulty: d, Count: n})
	}
	return stats, nil
}

func (f *fakeRecipeRepository) GetCategoryByID(_ context.Context, id uuid.UUID) (*entities.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (f *fakeRecipeRepository) ListCategories(_ context.Context) ([]entities.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]entities.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b entities.Category) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out, nil
}

func (f *fakeRecipeRepository) ListTags(_ context.Context) ([]TagCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]TagCount, 0, len(f.tags))
	for _, t := range f.tags {
		tc := TagCount{ID: t.ID, Name: t.Name, Slug: t.Slug}
		for _, ids := range f.recipeTags {
			if slices.Contains(ids, t.ID) {
				tc.RecipeCount++
			}
		}
		out = append(out, tc)
	}
	slices.SortFunc(out, func(a, b TagCount) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return out, nil
}

// fakeUserRepository reads the users registered on the recipe fake.
type fakeUserRepository struct {
	repo *fakeRecipeRepository
}

func (u fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	u.repo.mu.Lock()
	defer u.repo.mu.Unlock()
	u.repo.users[user.ID] = user
	return nil
}

func (u fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u.repo.mu.Lock()
	defer u.repo.mu.Unlock()

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	found, ok := u.repo.users[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return found, nil
}

func (u fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	u.repo.mu.Lock()
	defer u.repo.mu.Unlock()

	for _, found := range u.repo.users {
		if found.Email == email {
			return found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
