package service

import (
	"context"

	"github.com/pageza/recipes-api/backend/internal/model"
)

// IRecipeService defines the interface for recipe persistence. Every method
// runs as a single transaction.
type IRecipeService interface {
	CreateRecipe(ctx context.Context, fields model.RecipeFields) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*model.Recipe, error)
	ListRecipes(ctx context.Context) ([]*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id uint, patch model.RecipePatch) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uint) error
	CountRecipes(ctx context.Context) (int64, error)
}
