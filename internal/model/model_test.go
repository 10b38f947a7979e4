package model

import (
	"testing"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culinary-compass/backend/internal/nutrient"
)

func TestJSONBStringArray(t *testing.T) {
	v, err := JSONBStringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var a JSONBStringArray
	require.NoError(t, a.Scan([]byte(`["egg","cheese"]`)))
	assert.Equal(t, JSONBStringArray{"egg", "cheese"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Empty(t, a)

	assert.Error(t, a.Scan(42))
}

func TestFoodNutrientVector(t *testing.T) {
	f := Food{Description: "Spinach", MainCategory: "Veg"}
	require.NoError(t, f.SetNutrient(nutrient.Iron, 2.7))
	require.NoError(t, f.SetNutrient(nutrient.VitaminD, 0.1))
	assert.Error(t, f.SetNutrient("Niacin", 1))

	vec := f.NutrientVector()
	require.Len(t, vec, nutrient.FoodSchema.Len())
	i, _ := nutrient.FoodSchema.Index(nutrient.Iron)
	assert.Equal(t, 2.7, vec[i])
	assert.Equal(t, 0.1, vec[len(vec)-1])
	assert.NoError(t, f.Validate())

	assert.Error(t, (&Food{Description: "x"}).Validate())
}

func TestRecipeNutrientsAndValidate(t *testing.T) {
	r := Recipe{Name: "Omelette", DietaryCategory: DietNonVeg}
	for i, name := range nutrient.RecipeSchema.Names() {
		require.NoError(t, r.SetNutrient(name, float64(i+1)))
	}
	assert.Equal(t, nutrient.RecipeSchema.Names(), sortedByValue(r.Nutrients()))
	assert.Error(t, r.SetNutrient("Vitamins", 1))

	assert.Error(t, r.Validate(), "empty embedding is rejected")
	r.IngredientEmbedding = pgvector.NewVector([]float32{1, 0})
	assert.NoError(t, r.Validate())

	r.DietaryCategory = "Vegan"
	assert.Error(t, r.Validate())
}

func sortedByValue(m map[string]float64) []string {
	out := make([]string, len(m))
	for k, v := range m {
		out[int(v)-1] = k
	}
	return out
}
