package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/culinary-compass/backend/internal/errs"
	"github.com/culinary-compass/backend/internal/index"
	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/nutrient"
	"github.com/culinary-compass/backend/internal/types"
)

const (
	DefaultTopK             = 5
	DefaultCandidateWindow  = 50
	DefaultNutrientWeight   = 0.5
	DefaultIngredientWeight = 0.5
)

// RankingConfig tunes recipe ranking. Zero values take the defaults.
type RankingConfig struct {
	TopK             int
	CandidateWindow  int
	NutrientWeight   float64
	IngredientWeight float64
}

func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		TopK:             DefaultTopK,
		CandidateWindow:  DefaultCandidateWindow,
		NutrientWeight:   DefaultNutrientWeight,
		IngredientWeight: DefaultIngredientWeight,
	}
}

func (c RankingConfig) withDefaults() RankingConfig {
	d := DefaultRankingConfig()
	if c.TopK <= 0 {
		c.TopK = d.TopK
	}
	if c.CandidateWindow <= 0 {
		c.CandidateWindow = d.CandidateWindow
	}
	if c.NutrientWeight == 0 && c.IngredientWeight == 0 {
		c.NutrientWeight, c.IngredientWeight = d.NutrientWeight, d.IngredientWeight
	}
	return c
}

// RecipeRecommender ranks recipes by ingredient similarity and nutrient profile.
type RecipeRecommender struct {
	catalog  *Catalog
	embedder EmbeddingService
	cfg      RankingConfig
}

func NewRecipeRecommender(catalog *Catalog, embedder EmbeddingService, cfg RankingConfig) *RecipeRecommender {
	return &RecipeRecommender{catalog: catalog, embedder: embedder, cfg: cfg.withDefaults()}
}

// Recommend returns at most TopK recipes. Recipes are first narrowed to the
// CandidateWindow most ingredient-similar, then ordered by
// NutrientWeight*nutrient + IngredientWeight*ingredient similarity.
// Equal scores keep ingredient-similarity order.
func (r *RecipeRecommender) Recommend(ctx context.Context, targets map[string]float64, ingredients []string, pref types.DietaryPreference) ([]types.ScoredRecipe, error) {
	if err := validateTargets(targets); err != nil {
		return nil, err
	}
	selected := cleanIngredients(ingredients)
	if len(selected) == 0 {
		return nil, errs.ErrEmptyIngredients
	}
	switch pref {
	case types.PreferenceVeg, types.PreferenceNonVeg, types.PreferenceAny:
	default:
		return nil, fmt.Errorf("unknown dietary preference %q: %w", pref, errs.ErrInvalidInput)
	}

	snap, err := r.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	recipes, idx := snap.RecipesFor(pref)
	if len(recipes) == 0 {
		return nil, fmt.Errorf("no recipes for preference %q: %w", pref, errs.ErrNoResults)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query, err := r.embedder.GenerateEmbedding(ctx, strings.Join(selected, " "))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to embed ingredients: %w: %w", errs.ErrModelUnavailable, err)
	}

	ingredientSim, err := idx.Similarity(query)
	if err != nil {
		return nil, err
	}

	window := candidateWindow(ingredientSim, r.cfg.CandidateWindow)
	nutrientSim := nutrientSimilarity(targets, recipes, window)

	scored := make([]types.ScoredRecipe, len(window))
	for i, row := range window {
		scored[i] = types.ScoredRecipe{
			Recipe:               recipes[row],
			IngredientSimilarity: ingredientSim[row],
			NutrientSimilarity:   nutrientSim[i],
			CombinedScore:        r.cfg.NutrientWeight*nutrientSim[i] + r.cfg.IngredientWeight*ingredientSim[row],
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].CombinedScore > scored[j].CombinedScore
	})

	if len(scored) > r.cfg.TopK {
		scored = scored[:r.cfg.TopK]
	}
	return scored, nil
}

// validateTargets rejects names outside the recipe nutrient set and non-finite values.
func validateTargets(targets map[string]float64) error {
	if _, err := nutrient.RecipeSchema.Vector(targets); err != nil {
		return err
	}
	for name, v := range targets {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("target %s is not a finite number: %w", name, errs.ErrInvalidInput)
		}
	}
	return nil
}

func cleanIngredients(ingredients []string) []string {
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			out = append(out, ing)
		}
	}
	return out
}

// candidateWindow returns the rows of the size highest scores, best first.
// Ties keep row order.
func candidateWindow(scores []float64, size int) []int {
	rows := make([]int, len(scores))
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return scores[rows[a]] > scores[rows[b]]
	})
	if len(rows) > size {
		rows = rows[:size]
	}
	return rows
}

// nutrientSimilarity scores the window rows against the targets over
// nutrient.RecipeSimilaritySchema. The target vector is scaled by its own
// maximum and the window matrix by its global maximum, each only when positive.
// Cosine is scale-invariant, so the scaling leaves every score unchanged; it
// mirrors the reference ranking and keeps the scaled vectors comparable.
func nutrientSimilarity(targets map[string]float64, recipes []*model.Recipe, window []int) []float64 {
	query := nutrient.RecipeSimilaritySchema.Project(targets)
	scaleByMax(query, maxOf(query))

	matrix := make([][]float64, len(window))
	globalMax := math.Inf(-1)
	for i, row := range window {
		matrix[i] = nutrient.RecipeSimilaritySchema.Project(recipes[row].Nutrients())
		globalMax = math.Max(globalMax, maxOf(matrix[i]))
	}

	sims := make([]float64, len(window))
	for i, vec := range matrix {
		scaleByMax(vec, globalMax)
		sims[i] = index.Cosine64(query, vec)
	}
	return sims
}

func maxOf(v []float64) float64 {
	m := math.Inf(-1)
	for _, x := range v {
		m = math.Max(m, x)
	}
	return m
}

func scaleByMax(v []float64, max float64) {
	if !(max > 0) {
		return
	}
	for i := range v {
		v[i] /= max
	}
}
