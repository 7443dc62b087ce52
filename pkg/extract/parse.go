package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"recipe-hub/domain"
	"recipe-hub/entities"
)

const systemPrompt = `You extract recipes from web page text and video descriptions.
Reply with a single JSON object and nothing else, using this structure:
{
  "title": "string",
  "description": "string",
  "prepTime": number of minutes,
  "cookTime": number of minutes,
  "servings": number,
  "difficulty": "EASY" | "MEDIUM" | "HARD",
  "cuisine": "string",
  "ingredients": [{"name": "string", "amount": number, "unit": "string", "notes": "string"}],
  "instructions": ["step one", "step two"],
  "tags": ["string"]
}
Use an empty string or omit fields you cannot find. Amounts must be numbers; put anything else in notes.`

type (
	rawRecipe struct {
		Title        string          `json:"title"`
		Description  string          `json:"description"`
		PrepTime     any             `json:"prepTime"`
		CookTime     any             `json:"cookTime"`
		Servings     any             `json:"servings"`
		Difficulty   string          `json:"difficulty"`
		Cuisine      string          `json:"cuisine"`
		Ingredients  []rawIngredient `json:"ingredients"`
		Instructions json.RawMessage `json:"instructions"`
		Tags         []string        `json:"tags"`
	}

	rawIngredient struct {
		Name   string `json:"name"`
		Amount any    `json:"amount"`
		Unit   string `json:"unit"`
		Notes  string `json:"notes"`
	}
)

// ParseCompletion turns the model's answer into an ExtractedRecipe. Text
// around the first JSON object is ignored.
func ParseCompletion(text string) (domain.ExtractedRecipe, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return domain.ExtractedRecipe{}, fmt.Errorf("%w: no JSON object in completion", domain.ErrExtractionFailed)
	}

	var raw rawRecipe
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return domain.ExtractedRecipe{}, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	recipe := domain.ExtractedRecipe{
		Title:        strings.TrimSpace(raw.Title),
		Description:  strings.TrimSpace(raw.Description),
		PrepTime:     positiveInt(raw.PrepTime),
		CookTime:     positiveInt(raw.CookTime),
		Servings:     positiveInt(raw.Servings),
		Difficulty:   difficulty(raw.Difficulty),
		Cuisine:      strings.TrimSpace(raw.Cuisine),
		Ingredients:  make([]domain.ExtractedIngredient, 0, len(raw.Ingredients)),
		Instructions: parseInstructions(raw.Instructions),
	}
	if recipe.Title == "" {
		return domain.ExtractedRecipe{}, fmt.Errorf("%w: completion has no title", domain.ErrExtractionFailed)
	}

	for _, ing := range raw.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}
		amount, leftover := parseAmount(ing.Amount)
		unit := strings.TrimSpace(ing.Unit)
		if unit == "" && amount > 0 {
			unit, leftover = leftover, ""
		}
		recipe.Ingredients = append(recipe.Ingredients, domain.ExtractedIngredient{
			Name:   name,
			Amount: amount,
			Unit:   unit,
			Notes:  joinNonEmpty(leftover, strings.TrimSpace(ing.Notes)),
		})
	}

	for _, tag := range raw.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			recipe.Tags = append(recipe.Tags, tag)
		}
	}

	return recipe, nil
}

// parseInstructions accepts a list of strings, a list of {instruction}
// objects or one block of text with a step per line.
func parseInstructions(raw json.RawMessage) []string {
	steps := []string{}
	if len(raw) == 0 {
		return steps
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return appendSteps(steps, list...)
	}

	var objects []struct {
		Instruction string `json:"instruction"`
		Text        string `json:"text"`
	}
	if err := json.Unmarshal(raw, &objects); err == nil {
		for _, o := range objects {
			steps = appendSteps(steps, joinNonEmpty(o.Instruction, o.Text))
		}
		return steps
	}

	var block string
	if err := json.Unmarshal(raw, &block); err == nil {
		return appendSteps(steps, strings.Split(block, "\n")...)
	}
	return steps
}

func appendSteps(steps []string, lines ...string) []string {
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// parseAmount reads numbers, decimals, fractions and mixed numbers such as
// "1 1/2". Whatever cannot be read is returned as leftover text.
func parseAmount(v any) (float64, string) {
	switch a := v.(type) {
	case nil:
		return 0, ""
	case float64:
		if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
			return 0, ""
		}
		return a, ""
	case string:
		s := strings.TrimSpace(a)
		if s == "" {
			return 0, ""
		}
		fields := strings.Fields(s)
		total, used := 0.0, 0
		for _, f := range fields {
			n, ok := parseQuantity(f)
			if !ok || used == 2 {
				break
			}
			total += n
			used++
		}
		if used == 0 {
			return 0, s
		}
		return total, strings.Join(fields[used:], " ")
	default:
		return 0, fmt.Sprint(a)
	}
}

func parseQuantity(s string) (float64, bool) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 || n < 0 || d < 0 {
			return 0, false
		}
		return n / d, true
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func positiveInt(v any) *int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		fields := strings.Fields(n)
		if len(fields) == 0 {
			return nil
		}
		parsed, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	i := int(math.Round(f))
	if i <= 0 {
		return nil
	}
	return &i
}

func difficulty(d string) string {
	switch strings.ToUpper(strings.TrimSpace(d)) {
	case "EASY":
		return entities.DifficultyEasy
	case "MEDIUM":
		return entities.DifficultyMedium
	case "HARD":
		return entities.DifficultyHard
	default:
		return ""
	}
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
