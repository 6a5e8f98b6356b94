package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pageza/recipes-api/backend/internal/model"
)

// RequiredFieldsHint is returned with every failed create so clients know
// which fields a recipe needs.
const RequiredFieldsHint = "title, making_time, serves, ingredients, cost"

// Cost accepts a JSON integer or a string holding a decimal integer.
type Cost int

func (c *Cost) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	if n, err := strconv.Atoi(raw); err == nil {
		*c = Cost(n)
		return nil
	}
	// 30.0 is an integer too
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
		*c = Cost(int(f))
		return nil
	}
	return fmt.Errorf("cost must be an integer, got %s", data)
}

// MissingFieldsError lists the required fields absent from a create request.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// CreateRecipeRequest is the body of POST /recipes. Every field is required;
// Optional is used so that absent and null can both be reported as missing.
type CreateRecipeRequest struct {
	Title       model.Optional[string] `json:"title"`
	MakingTime  model.Optional[string] `json:"making_time"`
	Serves      model.Optional[string] `json:"serves"`
	Ingredients model.Optional[string] `json:"ingredients"`
	Cost        model.Optional[Cost]   `json:"cost"`
}

// Validate checks that all five business fields are present and non-null.
func (r CreateRecipeRequest) Validate() (model.RecipeFields, error) {
	var missing []string
	check := func(name string, set, null bool) {
		if !set || null {
			missing = append(missing, name)
		}
	}
	check("title", r.Title.Set, r.Title.Null)
	check("making_time", r.MakingTime.Set, r.MakingTime.Null)
	check("serves", r.Serves.Set, r.Serves.Null)
	check("ingredients", r.Ingredients.Set, r.Ingredients.Null)
	check("cost", r.Cost.Set, r.Cost.Null)

	if len(missing) > 0 {
		return model.RecipeFields{}, &MissingFieldsError{Fields: missing}
	}

	return model.RecipeFields{
		Title:       r.Title.Value,
		MakingTime:  r.MakingTime.Value,
		Serves:      r.Serves.Value,
		Ingredients: r.Ingredients.Value,
		Cost:        int(r.Cost.Value),
	}, nil
}

// UpdateRecipeRequest is the body of PATCH /recipes/:id. Every field is optional.
type UpdateRecipeRequest struct {
	Title       model.Optional[string] `json:"title"`
	MakingTime  model.Optional[string] `json:"making_time"`
	Serves      model.Optional[string] `json:"serves"`
	Ingredients model.Optional[string] `json:"ingredients"`
	Cost        model.Optional[Cost]   `json:"cost"`
}

// Patch converts the request into the store's partial update. Present-null
// fields are carried through untouched.
func (r UpdateRecipeRequest) Patch() model.RecipePatch {
	return model.RecipePatch{
		Title:       r.Title,
		MakingTime:  r.MakingTime,
		Serves:      r.Serves,
		Ingredients: r.Ingredients,
		Cost: model.Optional[int]{
			Set:   r.Cost.Set,
			Null:  r.Cost.Null,
			Value: int(r.Cost.Value),
		},
	}
}
