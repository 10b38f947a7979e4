package testhelpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culinary-compass/backend/internal/database"
	"github.com/culinary-compass/backend/internal/model"
)

func TestFixturesAreValid(t *testing.T) {
	for _, f := range Foods() {
		assert.NoError(t, f.Validate())
	}
	veg := 0
	for _, r := range Recipes() {
		require.NoError(t, r.Validate())
		assert.Len(t, r.IngredientEmbedding.Slice(), FixtureDimensions)
		if r.DietaryCategory == model.DietVeg {
			veg++
		}
	}
	assert.Equal(t, 5, veg)
}

func TestPostgresDatasetRoundTrip(t *testing.T) {
	db := SetupTestDatabase(t)
	repo := database.NewDatasetRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceFoods(ctx, Foods()))
	require.NoError(t, repo.ReplaceRecipes(ctx, FixtureModel, Recipes()))

	recipes, err := repo.LoadRecipes(ctx, FixtureModel)
	require.NoError(t, err)
	require.Len(t, recipes, len(recipeFixtures))
	assert.Equal(t, "Cheese Omelette", recipes[0].Name)
	assert.Len(t, recipes[0].IngredientEmbedding.Slice(), FixtureDimensions)
}
