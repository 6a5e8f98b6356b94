package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipes-api/backend/internal/model"
	"github.com/pageza/recipes-api/backend/internal/testhelpers"
)

func tomatoSoup() model.RecipeFields {
	return model.RecipeFields{
		Title:       "Tomato Soup",
		MakingTime:  "15 min",
		Serves:      "3",
		Ingredients: "tomato, salt",
		Cost:        30,
	}
}

func setupRecipeService(t *testing.T) *RecipeService {
	return NewRecipeService(testhelpers.SetupSQLite(t))
}

func TestCreateRecipe(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	recipe, err := svc.CreateRecipe(ctx, tomatoSoup())
	require.NoError(t, err)

	assert.Equal(t, uint(1), recipe.ID)
	assert.Equal(t, "Tomato Soup", recipe.Title)
	assert.False(t, recipe.CreatedAt.IsZero())
	assert.True(t, recipe.UpdatedAt.Equal(recipe.CreatedAt), "updated_at must equal created_at on insert")

	second, err := svc.CreateRecipe(ctx, tomatoSoup())
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.ID)
}

func TestGetRecipe(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, tomatoSoup())
	require.NoError(t, err)

	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Ingredients, got.Ingredients)
	assert.Equal(t, created.Cost, got.Cost)

	_, err = svc.GetRecipe(ctx, 999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestListRecipesOrderedByID(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	empty, err := svc.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, title := range []string{"first", "second", "third"} {
		fields := tomatoSoup()
		fields.Title = title
		_, err := svc.CreateRecipe(ctx, fields)
		require.NoError(t, err)
	}

	recipes, err := svc.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	for i, title := range []string{"first", "second", "third"} {
		assert.Equal(t, uint(i+1), recipes[i].ID)
		assert.Equal(t, title, recipes[i].Title)
	}
}

func TestUpdateRecipeOnlyCost(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, tomatoSoup())
	require.NoError(t, err)

	svc.now = func() time.Time { return created.CreatedAt.Add(time.Minute) }

	updated, err := svc.UpdateRecipe(ctx, created.ID, model.RecipePatch{Cost: model.Some(50)})
	require.NoError(t, err)

	assert.Equal(t, 50, updated.Cost)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.MakingTime, updated.MakingTime)
	assert.Equal(t, created.Serves, updated.Serves)
	assert.Equal(t, created.Ingredients, updated.Ingredients)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt), "created_at must not change")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	refetched, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, refetched.Cost)
	assert.Equal(t, created.Title, refetched.Title)
}

func TestUpdateRecipeEmptyPatchRefreshesUpdatedAt(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, tomatoSoup())
	require.NoError(t, err)

	svc.now = func() time.Time { return created.CreatedAt.Add(2 * time.Second) }

	updated, err := svc.UpdateRecipe(ctx, created.ID, model.RecipePatch{})
	require.NoError(t, err)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Cost, updated.Cost)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateRecipeNeverPrecedesCreatedAt(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, tomatoSoup())
	require.NoError(t, err)

	svc.now = func() time.Time { return created.CreatedAt.Add(-time.Hour) }

	updated, err := svc.UpdateRecipe(ctx, created.ID, model.RecipePatch{Serves: model.Some("4")})
	require.NoError(t, err)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestUpdateRecipeNullFieldRollsBack(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, tomatoSoup())
	require.NoError(t, err)

	_, err = svc.UpdateRecipe(ctx, created.ID, model.RecipePatch{
		Cost:  model.Some(999),
		Title: model.Null[string](),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRecipeNotFound)

	stored, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", stored.Title)
	assert.Equal(t, 30, stored.Cost, "no partial field application may survive a failed update")
	assert.True(t, stored.UpdatedAt.Equal(created.UpdatedAt))
}

func TestUpdateRecipeNotFound(t *testing.T) {
	svc := setupRecipeService(t)

	_, err := svc.UpdateRecipe(context.Background(), 42, model.RecipePatch{Cost: model.Some(1)})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, tomatoSoup())
	require.NoError(t, err)
	_, err = svc.CreateRecipe(ctx, tomatoSoup())
	require.NoError(t, err)

	err = svc.DeleteRecipe(ctx, 999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
	count, err := svc.CountRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID))
	count, err = svc.CountRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = svc.GetRecipe(ctx, created.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, created.ID), ErrRecipeNotFound)
}

func TestUnstorableIDsAreNotFound(t *testing.T) {
	svc := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, tomatoSoup())
	require.NoError(t, err)

	for _, id := range []uint{0, model.MaxRecipeID + 1} {
		_, err := svc.GetRecipe(ctx, id)
		assert.ErrorIs(t, err, ErrRecipeNotFound, "get %d", id)

		_, err = svc.UpdateRecipe(ctx, id, model.RecipePatch{Cost: model.Some(1)})
		assert.ErrorIs(t, err, ErrRecipeNotFound, "update %d", id)

		assert.ErrorIs(t, svc.DeleteRecipe(ctx, id), ErrRecipeNotFound, "delete %d", id)
	}

	count, err := svc.CountRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateRecipeFailsWithoutTable(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	require.NoError(t, db.Migrator().DropTable(&model.Recipe{}))

	_, err := NewRecipeService(db).CreateRecipe(context.Background(), tomatoSoup())
	assert.Error(t, err)
}
