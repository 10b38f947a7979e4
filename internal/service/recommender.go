package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/culinary-compass/backend/internal/errs"
	"github.com/culinary-compass/backend/internal/logging"
	"github.com/culinary-compass/backend/internal/metrics"
	"github.com/culinary-compass/backend/internal/types"
)

// RecommenderConfig tunes both recommendation stages.
type RecommenderConfig struct {
	FoodNeighbors int
	Ranking       RankingConfig
}

// Recommender is the entry point for both recommendation stages. It shares
// one Catalog between them.
type Recommender struct {
	catalog *Catalog
	foods   *FoodRecommender
	recipes *RecipeRecommender
}

func NewRecommender(catalog *Catalog, embedder EmbeddingService, cfg RecommenderConfig) *Recommender {
	return &Recommender{
		catalog: catalog,
		foods:   NewFoodRecommender(catalog, cfg.FoodNeighbors),
		recipes: NewRecipeRecommender(catalog, embedder, cfg.Ranking),
	}
}

// Warm loads the catalog ahead of the first request.
func (r *Recommender) Warm(ctx context.Context) error {
	_, err := r.catalog.Snapshot(ctx)
	return err
}

func (r *Recommender) RecommendFoods(ctx context.Context, deficiencies []string, category string) (types.RecommendationGroup, error) {
	start := time.Now()
	groups, err := r.foods.Recommend(ctx, deficiencies, category)
	metrics.RecommendationDuration.WithLabelValues("foods").Observe(time.Since(start).Seconds())
	if err != nil {
		r.observeError(ctx, "foods", err)
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Strs("deficiencies", deficiencies).
		Str("category", category).
		Int("foods", groups.Len()).
		Msg("foods recommended")
	return groups, nil
}

func (r *Recommender) RecommendRecipes(ctx context.Context, targets map[string]float64, ingredients []string, pref types.DietaryPreference) ([]types.ScoredRecipe, error) {
	start := time.Now()
	recipes, err := r.recipes.Recommend(ctx, targets, ingredients, pref)
	metrics.RecommendationDuration.WithLabelValues("recipes").Observe(time.Since(start).Seconds())
	if err != nil {
		r.observeError(ctx, "recipes", err)
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Int("ingredients", len(ingredients)).
		Str("preference", string(pref)).
		Int("recipes", len(recipes)).
		Msg("recipes recommended")
	return recipes, nil
}

// NutrientRanges returns the observed range of every recipe nutrient.
func (r *Recommender) NutrientRanges(ctx context.Context) ([]types.NutrientRange, error) {
	snap, err := r.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return append([]types.NutrientRange(nil), snap.Ranges...), nil
}

func (r *Recommender) observeError(ctx context.Context, kind string, err error) {
	reason := ErrorReason(err)
	metrics.RecommendationErrors.WithLabelValues(kind, reason).Inc()

	logger := logging.Ctx(ctx)
	level := zerolog.WarnLevel
	if reason == "internal" || reason == "model_unavailable" {
		level = zerolog.ErrorLevel
	}
	logger.WithLevel(level).Err(err).Str("kind", kind).Str("reason", reason).Msg("recommendation failed")
}

// ErrorReason classifies err into a short label for metrics and logs.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, errs.ErrInvalidNutrient):
		return "invalid_nutrient"
	case errors.Is(err, errs.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, errs.ErrEmptyIngredients):
		return "empty_ingredients"
	case errors.Is(err, errs.ErrNoResults):
		return "no_results"
	case errors.Is(err, errs.ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
