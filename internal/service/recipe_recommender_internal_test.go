package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culinary-compass/backend/internal/index"
	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/nutrient"
)

func TestCandidateWindow(t *testing.T) {
	scores := []float64{0.2, 0.9, 0.5, 0.9, -0.1}

	assert.Equal(t, []int{1, 3, 2}, candidateWindow(scores, 3))
	assert.Equal(t, []int{1, 3, 2, 0, 4}, candidateWindow(scores, 50))
	assert.Empty(t, candidateWindow(nil, 5))
}

func TestNutrientSimilarityScaling(t *testing.T) {
	recipes := []*model.Recipe{
		{Calories: 400, ProteinContent: 40},
		{Calories: 200, ProteinContent: 20},
		{Calories: 0, ProteinContent: 50},
	}

	t.Run("parallel profiles score one", func(t *testing.T) {
		targets := map[string]float64{nutrient.Calories: 100, nutrient.ProteinContent: 10}
		sims := nutrientSimilarity(targets, recipes, []int{0, 1, 2})
		require.Len(t, sims, 3)
		assert.InDelta(t, 1.0, sims[0], 1e-9)
		assert.InDelta(t, 1.0, sims[1], 1e-9)
		assert.InDelta(t, 10/math.Sqrt(10100), sims[2], 1e-9)
	})

	t.Run("only window rows are scored", func(t *testing.T) {
		targets := map[string]float64{nutrient.ProteinContent: 1}
		sims := nutrientSimilarity(targets, recipes, []int{2})
		require.Len(t, sims, 1)
		assert.InDelta(t, 1.0, sims[0], 1e-9)
	})

	t.Run("zero targets score zero", func(t *testing.T) {
		sims := nutrientSimilarity(nil, recipes, []int{0, 1})
		assert.Equal(t, []float64{0, 0}, sims)
	})

	t.Run("max scaling does not change the score", func(t *testing.T) {
		targets := map[string]float64{nutrient.Calories: 500, nutrient.FatContent: 20, nutrient.ProteinContent: 30}
		sims := nutrientSimilarity(targets, recipes, []int{0, 1, 2})
		query := nutrient.RecipeSimilaritySchema.Project(targets)
		for i, row := range []int{0, 1, 2} {
			raw := index.Cosine64(query, nutrient.RecipeSimilaritySchema.Project(recipes[row].Nutrients()))
			assert.InDelta(t, raw, sims[i], 1e-12)
		}
	})

	t.Run("non-positive maximum is not scaled", func(t *testing.T) {
		v := []float64{-2, -1}
		scaleByMax(v, maxOf(v))
		assert.Equal(t, []float64{-2, -1}, v)
	})
}

func TestRankingConfigDefaults(t *testing.T) {
	cfg := RankingConfig{}.withDefaults()
	assert.Equal(t, DefaultRankingConfig(), cfg)

	cfg = RankingConfig{TopK: 3, NutrientWeight: 1}.withDefaults()
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, DefaultCandidateWindow, cfg.CandidateWindow)
	assert.Equal(t, 1.0, cfg.NutrientWeight)
	assert.Equal(t, 0.0, cfg.IngredientWeight)
}

func TestCleanIngredients(t *testing.T) {
	assert.Equal(t, []string{"egg", "cheese"}, cleanIngredients([]string{" egg ", "", "\t", "cheese"}))
	assert.Empty(t, cleanIngredients(nil))
}
