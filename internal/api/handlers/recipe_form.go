package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"recipe-hub/domain"
)

// Form field names used by the recipe editor.
const (
	formTitle            = "title"
	formDescription      = "description"
	formPrepTime         = "prepTime"
	formCookTime         = "cookTime"
	formServings         = "servings"
	formDifficulty       = "difficulty"
	formCuisine          = "cuisine"
	formCategoryID       = "categoryId"
	formPublic           = "public"
	formIngredientName   = "ingredient-name"
	formIngredientAmount = "ingredient-amount"
	formIngredientUnit   = "ingredient-unit"
	formIngredientNotes  = "ingredient-notes"
	formInstruction      = "instruction"
	formTags             = "tags"
)

// readForm collects url-encoded or multipart values in submission order.
func readForm(c *fiber.Ctx) (url.Values, error) {
	values := url.Values{}

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		for key, vals := range form.Value {
			values[key] = append(values[key], vals...)
		}
		return values, nil
	}

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values, nil
}

// decodeRecipeForm maps the editor's fields onto a create request. Values
// that cannot be decoded are reported together as a ValidationError.
func decodeRecipeForm(values url.Values) (domain.CreateRecipeRequest, error) {
	verr := domain.NewValidationError()

	req := domain.CreateRecipeRequest{
		Title:        first(values, formTitle),
		Description:  first(values, formDescription),
		PrepTime:     formInt(values, formPrepTime, verr),
		CookTime:     formInt(values, formCookTime, verr),
		Servings:     formInt(values, formServings, verr),
		Difficulty:   first(values, formDifficulty),
		Cuisine:      first(values, formCuisine),
		CategoryID:   first(values, formCategoryID),
		Public:       formCheckbox(first(values, formPublic)),
		Ingredients:  formIngredients(values, verr),
		Instructions: formInstructions(values),
		Tags:         parseFormTags(first(values, formTags)),
	}

	if verr.HasErrors() {
		return req, verr
	}
	return req, nil
}

// updateFromForm turns a full form submission into an update that replaces
// every collection, including with an empty one. Blank numbers clear the
// stored value.
func updateFromForm(req domain.CreateRecipeRequest) domain.UpdateRecipeRequest {
	update := domain.UpdateRecipeRequest{
		Title:        &req.Title,
		Description:  &req.Description,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Cuisine:      &req.Cuisine,
		CategoryID:   &req.CategoryID,
		Public:       &req.Public,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Tags:         req.Tags,
	}
	if req.Difficulty != "" {
		update.Difficulty = &req.Difficulty
	}
	if req.PrepTime == nil {
		update.Clear = append(update.Clear, domain.FieldPrepTime)
	}
	if req.CookTime == nil {
		update.Clear = append(update.Clear, domain.FieldCookTime)
	}
	if req.Servings == nil {
		update.Clear = append(update.Clear, domain.FieldServings)
	}
	return update
}

func first(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func formInt(values url.Values, key string, verr *domain.ValidationError) *domain.FlexInt {
	raw := first(values, key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		verr.Add(key, fmt.Sprintf("%s must be a whole number", key))
		return nil
	}
	v := domain.FlexInt(n)
	return &v
}

func formCheckbox(raw string) bool {
	switch strings.ToLower(raw) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func formIngredients(values url.Values, verr *domain.ValidationError) []domain.IngredientRequest {
	names := values[formIngredientName]
	amounts := values[formIngredientAmount]
	units := values[formIngredientUnit]
	notes := values[formIngredientNotes]

	rows := max(len(names), len(amounts), len(units), len(notes))
	for rows > 0 && blankRow(rows-1, names, amounts, units, notes) {
		rows--
	}

	for _, column := range []struct {
		key  string
		list []string
	}{
		{formIngredientName, names},
		{formIngredientAmount, amounts},
		{formIngredientUnit, units},
	} {
		if len(column.list) < rows {
			verr.Add(column.key, fmt.Sprintf("expected %d values, got %d", rows, len(column.list)))
		}
	}

	ingredients := make([]domain.IngredientRequest, 0, rows)
	for i := 0; i < rows; i++ {
		ing := domain.IngredientRequest{
			Name:  at(names, i),
			Unit:  at(units, i),
			Notes: at(notes, i),
		}
		if raw := at(amounts, i); raw != "" {
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				verr.Add(fmt.Sprintf("ingredients[%d].amount", i), "amount must be a number")
			}
			ing.Amount = domain.FlexFloat(amount)
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients
}

func formInstructions(values url.Values) []domain.InstructionRequest {
	steps := values[formInstruction]
	rows := len(steps)
	for rows > 0 && strings.TrimSpace(steps[rows-1]) == "" {
		rows--
	}

	instructions := make([]domain.InstructionRequest, 0, rows)
	for i := 0; i < rows; i++ {
		instructions = append(instructions, domain.InstructionRequest{Instruction: at(steps, i)})
	}
	return instructions
}

func parseFormTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func blankRow(i int, lists ...[]string) bool {
	for _, list := range lists {
		if at(list, i) != "" {
			return false
		}
	}
	return true
}

func at(list []string, i int) string {
	if i < len(list) {
		return strings.TrimSpace(list[i])
	}
	return ""
}
