package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pageza/recipes-api/backend/internal/model"
	"gorm.io/gorm"
)

// ErrRecipeNotFound is returned when no row matches the requested id.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeService handles recipe operations
type RecipeService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{
		db:  db,
		now: time.Now,
	}
}

// CreateRecipe inserts a new recipe. gorm stamps created_at and updated_at
// with the same instant.
func (s *RecipeService) CreateRecipe(ctx context.Context, fields model.RecipeFields) (*model.Recipe, error) {
	recipe := model.NewRecipe(fields)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(recipe).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return findRecipe(tx, id, &recipe)
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns every recipe in primary key order
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Order("id ASC").Find(&recipes).Error
	})
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// UpdateRecipe applies the fields present in patch and refreshes updated_at.
// The row is re-read inside the transaction so the caller sees committed values.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uint, patch model.RecipePatch) (*model.Recipe, error) {
	var recipe model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findRecipe(tx, id, &recipe); err != nil {
			return err
		}

		// updated_at never moves behind created_at, even with a skewed clock
		updatedAt := s.now()
		if updatedAt.Before(recipe.CreatedAt) {
			updatedAt = recipe.CreatedAt
		}

		if err := tx.Model(&model.Recipe{}).Where("id = ?", id).Updates(patch.Assignments(updatedAt)).Error; err != nil {
			return fmt.Errorf("update recipe %d: %w", id, err)
		}
		return findRecipe(tx, id, &recipe)
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe hard-deletes a recipe. ErrRecipeNotFound is returned when the id does not exist.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uint) error {
	if !storableID(id) {
		return ErrRecipeNotFound
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Recipe{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete recipe %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		return nil
	})
}

// CountRecipes returns the number of stored recipes
func (s *RecipeService) CountRecipes(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return count, nil
}

func findRecipe(tx *gorm.DB, id uint, recipe *model.Recipe) error {
	if !storableID(id) {
		return ErrRecipeNotFound
	}
	if err := tx.First(recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return fmt.Errorf("find recipe %d: %w", id, err)
	}
	return nil
}

// storableID reports whether id fits the primary key column. PostgreSQL
// rejects out-of-range int4 parameters instead of matching no rows.
func storableID(id uint) bool {
	return id > 0 && uint64(id) <= model.MaxRecipeID
}
