package nutrient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culinary-compass/backend/internal/errs"
)

func TestFoodSchemaOrder(t *testing.T) {
	names := FoodSchema.Names()
	require.Len(t, names, 22)
	assert.Equal(t, Calcium, names[0])
	assert.Equal(t, Iron, names[4])
	assert.Equal(t, VitaminD, names[21])

	// Names returns a copy.
	names[0] = "mutated"
	assert.Equal(t, Calcium, FoodSchema.Names()[0])
}

func TestEncode(t *testing.T) {
	t.Run("one hot in schema order", func(t *testing.T) {
		vec, err := FoodSchema.Encode([]string{Iron, Calcium})
		require.NoError(t, err)
		require.Len(t, vec, FoodSchema.Len())

		ones := 0
		for i, v := range vec {
			switch i {
			case 0, 4:
				assert.Equal(t, 1.0, v)
			default:
				assert.Equal(t, 0.0, v)
			}
			if v == 1 {
				ones++
			}
		}
		assert.Equal(t, 2, ones)
	})

	t.Run("every subset has exactly |D| ones", func(t *testing.T) {
		all := FoodSchema.Names()
		for n := 0; n <= len(all); n++ {
			vec, err := FoodSchema.Encode(all[:n])
			require.NoError(t, err)
			sum := 0.0
			for _, v := range vec {
				sum += v
			}
			assert.Equal(t, float64(n), sum)
		}
	})

	t.Run("empty set is the zero vector", func(t *testing.T) {
		vec, err := FoodSchema.Encode(nil)
		require.NoError(t, err)
		assert.Equal(t, make([]float64, 22), vec)
	})

	t.Run("invalid names are listed exactly", func(t *testing.T) {
		_, err := FoodSchema.Encode([]string{"iron", "unobtainium", "Niacin", "unobtainium"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvalidNutrient))

		var invalid *errs.InvalidNutrientError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, []string{"unobtainium", "Niacin"}, invalid.Names)
		assert.Contains(t, err.Error(), "Choose from")
	})
}

func TestVector(t *testing.T) {
	vec, err := RecipeSimilaritySchema.Vector(map[string]float64{
		Calories:   500,
		FatContent: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{500, 20, 0, 0, 0, 0}, vec)

	_, err = RecipeSimilaritySchema.Vector(map[string]float64{"Vitamins": 1})
	assert.ErrorIs(t, err, errs.ErrInvalidNutrient)

	// Project ignores names outside the schema.
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 30},
		RecipeSimilaritySchema.Project(map[string]float64{ProteinContent: 30, SodiumContent: 9}))
}

func TestNewSchemaRejectsDuplicates(t *testing.T) {
	_, err := NewSchema("a", "b", "a")
	assert.Error(t, err)

	_, err = NewSchema("a", "")
	assert.Error(t, err)
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, Niacin, CanonicalName("Niacin"))
	assert.Equal(t, VitaminB6, CanonicalName("vitamin_B_6"))
	assert.Equal(t, VitaminB12, CanonicalName("vitamin_B_12"))
	assert.Equal(t, Iron, CanonicalName("iron"))
}
