package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-hub/domain"
	"recipe-hub/entities"
)

func TestParseCompletion(t *testing.T) {
	completion := "Sure! Here it is:\n```json\n" + `{
		"title": " Pancakes ",
		"description": "Fluffy breakfast pancakes",
		"prepTime": 10,
		"cookTime": "15 minutes",
		"servings": 0,
		"difficulty": "EASY",
		"cuisine": "American",
		"ingredients": [
			{"name": "Flour", "amount": 2, "unit": "cups"},
			{"name": "Milk", "amount": "1 1/2", "unit": "cups"},
			{"name": "Sugar", "amount": "1/4 cup"},
			{"name": "Salt", "amount": "a pinch"},
			{"name": "  ", "amount": 1}
		],
		"instructions": ["Mix dry ingredients.", " ", "Whisk in milk."],
		"tags": ["Breakfast", ""]
	}` + "\n```"

	recipe, err := ParseCompletion(completion)
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", recipe.Title)
	require.NotNil(t, recipe.PrepTime)
	assert.Equal(t, 10, *recipe.PrepTime)
	require.NotNil(t, recipe.CookTime)
	assert.Equal(t, 15, *recipe.CookTime)
	assert.Nil(t, recipe.Servings)
	assert.Equal(t, entities.DifficultyEasy, recipe.Difficulty)
	assert.Equal(t, []string{"Mix dry ingredients.", "Whisk in milk."}, recipe.Instructions)
	assert.Equal(t, []string{"Breakfast"}, recipe.Tags)

	require.Len(t, recipe.Ingredients, 4)
	assert.Equal(t, domain.ExtractedIngredient{Name: "Flour", Amount: 2, Unit: "cups"}, recipe.Ingredients[0])
	assert.Equal(t, domain.ExtractedIngredient{Name: "Milk", Amount: 1.5, Unit: "cups"}, recipe.Ingredients[1])
	assert.Equal(t, domain.ExtractedIngredient{Name: "Sugar", Amount: 0.25, Unit: "cup"}, recipe.Ingredients[2])
	assert.Equal(t, domain.ExtractedIngredient{Name: "Salt", Amount: 0, Notes: "a pinch"}, recipe.Ingredients[3])
}

func TestParseCompletionInstructionShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "single block", raw: `"Boil water.\nAdd pasta.\n\nDrain."`, want: []string{"Boil water.", "Add pasta.", "Drain."}},
		{name: "objects", raw: `[{"instruction": "Boil water."}, {"text": "Add pasta."}]`, want: []string{"Boil water.", "Add pasta."}},
		{name: "missing", raw: `null`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipe, err := ParseCompletion(`{"title": "Pasta", "instructions": ` + tt.raw + `}`)
			require.NoError(t, err)
			assert.Equal(t, tt.want, recipe.Instructions)
		})
	}
}

func TestParseCompletionFailures(t *testing.T) {
	tests := []struct {
		name       string
		completion string
	}{
		{name: "no json", completion: "I could not find a recipe on this page."},
		{name: "broken json", completion: `{"title": "Soup",`},
		{name: "no title", completion: `{"description": "something"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCompletion(tt.completion)
			assert.ErrorIs(t, err, domain.ErrExtractionFailed)
		})
	}
}

func TestDifficulty(t *testing.T) {
	assert.Equal(t, entities.DifficultyMedium, difficulty("medium"))
	assert.Equal(t, entities.DifficultyHard, difficulty(" Hard "))
	assert.Equal(t, "", difficulty("expert"))
}
