package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipes-api/backend/internal/mocks"
	"github.com/pageza/recipes-api/backend/internal/model"
	"github.com/pageza/recipes-api/backend/internal/service"
	"github.com/pageza/recipes-api/backend/internal/testhelpers"
)

const seedFile = `[
  {"title":"Chicken Curry","making_time":"45 min","serves":"4","ingredients":"onion, chicken, seasoning","cost":1000},
  {"title":"Rice Omelette","making_time":"30 min","serves":"2","ingredients":"onion, egg, seasoning, soy sauce","cost":"700"},
  {"title":"Missing cost","making_time":"5 min","serves":"1","ingredients":"water"},
  {"title":"Cheap Toast","making_time":"2 min","serves":"1","ingredients":"bread","cost":"cheap"},
  "not an object",
  {"title":"Miso Soup","making_time":"10 min","serves":"2","ingredients":"miso, tofu","cost":300}
]`

func TestSeed(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	entries, err := Decode(strings.NewReader(seedFile))
	require.NoError(t, err)
	require.Len(t, entries, 6)

	res, err := Seed(context.Background(), service.NewRecipeService(db), entries)
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 3, Skipped: 3}, res)

	var recipes []model.Recipe
	require.NoError(t, db.Order("id").Find(&recipes).Error)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Chicken Curry", recipes[0].Title)
	assert.Equal(t, 700, recipes[1].Cost)
	assert.Equal(t, "Miso Soup", recipes[2].Title)
}

func TestDecodeRejectsNonArray(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"title":"Soup"}`))
	assert.Error(t, err)
}

func TestSeedStopsOnStoreError(t *testing.T) {
	entries, err := Decode(strings.NewReader(seedFile))
	require.NoError(t, err)

	svc := new(mocks.MockRecipeService)
	svc.On("CreateRecipe", mock.Anything, mock.Anything).Return(nil, errors.New("read-only transaction")).Once()

	res, err := Seed(context.Background(), svc, entries)
	assert.ErrorContains(t, err, "seed entry 0")
	assert.Equal(t, Result{}, res)
	svc.AssertNumberOfCalls(t, "CreateRecipe", 1)
}
