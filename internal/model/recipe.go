package model

import (
	"math"
	"time"
)

// MaxRecipeID is the largest id the SERIAL primary key can hold. Larger ids
// cannot name a stored row.
const MaxRecipeID = math.MaxInt32

// Recipe is the single persisted entity. Timestamps are managed by gorm:
// both are stamped with the same instant on insert.
type Recipe struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	MakingTime  string    `gorm:"size:100;not null" json:"making_time"`
	Serves      string    `gorm:"size:100;not null" json:"serves"`
	Ingredients string    `gorm:"size:300;not null" json:"ingredients"`
	Cost        int       `gorm:"not null" json:"cost"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// RecipeFields are the business fields required to create a recipe.
type RecipeFields struct {
	Title       string
	MakingTime  string
	Serves      string
	Ingredients string
	Cost        int
}

// NewRecipe builds an unsaved Recipe from fully validated fields.
func NewRecipe(f RecipeFields) *Recipe {
	return &Recipe{
		Title:       f.Title,
		MakingTime:  f.MakingTime,
		Serves:      f.Serves,
		Ingredients: f.Ingredients,
		Cost:        f.Cost,
	}
}

// RecipePatch is a partial update. Only fields with Set are written; a
// Set-and-Null field is written as NULL and rejected by the NOT NULL columns.
type RecipePatch struct {
	Title       Optional[string]
	MakingTime  Optional[string]
	Serves      Optional[string]
	Ingredients Optional[string]
	Cost        Optional[int]
}

// Assignments returns the column map for the update, always stamping updated_at
// so that an empty patch still counts as a modification.
func (p RecipePatch) Assignments(updatedAt time.Time) map[string]interface{} {
	values := map[string]interface{}{"updated_at": updatedAt}
	assign(values, "title", p.Title)
	assign(values, "making_time", p.MakingTime)
	assign(values, "serves", p.Serves)
	assign(values, "ingredients", p.Ingredients)
	assign(values, "cost", p.Cost)
	return values
}

func assign[T any](values map[string]interface{}, column string, field Optional[T]) {
	switch {
	case !field.Set:
		return
	case field.Null:
		values[column] = nil
	default:
		values[column] = field.Value
	}
}
