package service

import (
	"context"
	"fmt"
	"math"
	"sync"

	pgvector "github.com/pgvector/pgvector-go"
	"golang.org/x/sync/errgroup"

	"github.com/culinary-compass/backend/internal/index"
	"github.com/culinary-compass/backend/internal/logging"
	"github.com/culinary-compass/backend/internal/metrics"
	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/nutrient"
	"github.com/culinary-compass/backend/internal/types"
)

// Snapshot is the immutable, fully indexed view of the reference datasets.
// Records reachable from a Snapshot must not be modified.
type Snapshot struct {
	Foods     []*model.Food
	FoodIndex *index.FoodIndex

	Recipes     []*model.Recipe
	Ingredients *index.IngredientIndex

	VegRecipes     []*model.Recipe
	VegIngredients *index.IngredientIndex

	Ranges []types.NutrientRange
}

// NewSnapshot validates the records and builds every index over them.
func NewSnapshot(foods []*model.Food, recipes []*model.Recipe) (*Snapshot, error) {
	for _, f := range foods {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("invalid food record: %w", err)
		}
	}
	foodIndex, err := index.NewFoodIndex(foods, nutrient.FoodSchema.Len())
	if err != nil {
		return nil, fmt.Errorf("failed to build food index: %w", err)
	}

	var veg []*model.Recipe
	for _, r := range recipes {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid recipe record: %w", err)
		}
		if r.DietaryCategory == model.DietVeg {
			veg = append(veg, r)
		}
	}
	all, err := ingredientIndex(recipes)
	if err != nil {
		return nil, err
	}
	vegIndex, err := ingredientIndex(veg)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Foods:          foods,
		FoodIndex:      foodIndex,
		Recipes:        recipes,
		Ingredients:    all,
		VegRecipes:     veg,
		VegIngredients: vegIndex,
		Ranges:         nutrientRanges(recipes),
	}, nil
}

func ingredientIndex(recipes []*model.Recipe) (*index.IngredientIndex, error) {
	embeddings := make([]pgvector.Vector, len(recipes))
	for i, r := range recipes {
		embeddings[i] = r.IngredientEmbedding
	}
	idx, err := index.NewIngredientIndex(embeddings)
	if err != nil {
		return nil, fmt.Errorf("failed to build ingredient index: %w", err)
	}
	return idx, nil
}

// RecipesFor returns the recipe subset and its ingredient index for a preference.
// Only Veg narrows the corpus.
func (s *Snapshot) RecipesFor(pref types.DietaryPreference) ([]*model.Recipe, *index.IngredientIndex) {
	if pref == types.PreferenceVeg {
		return s.VegRecipes, s.VegIngredients
	}
	return s.Recipes, s.Ingredients
}

func nutrientRanges(recipes []*model.Recipe) []types.NutrientRange {
	names := nutrient.RecipeSchema.Names()
	ranges := make([]types.NutrientRange, len(names))
	for i, name := range names {
		ranges[i] = types.NutrientRange{Name: name}
		if len(recipes) == 0 {
			continue
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, r := range recipes {
			v := r.Nutrients()[name]
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		ranges[i].Min, ranges[i].Max = lo, hi
	}
	return ranges
}

// Catalog loads the reference datasets once and shares the resulting
// Snapshot. Concurrent callers block until the first load finishes; a load
// error is returned to every caller.
type Catalog struct {
	source         DatasetSource
	embeddingModel string

	once sync.Once
	snap *Snapshot
	err  error
}

func NewCatalog(source DatasetSource, embeddingModel string) *Catalog {
	return &Catalog{source: source, embeddingModel: embeddingModel}
}

// NewStaticCatalog wraps an already built snapshot.
func NewStaticCatalog(snap *Snapshot) *Catalog {
	c := &Catalog{snap: snap}
	c.once.Do(func() {})
	return c
}

// Snapshot returns the loaded snapshot, loading it on first use. The load
// is not bound to the caller's cancellation.
func (c *Catalog) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.once.Do(func() {
		c.snap, c.err = c.load(context.WithoutCancel(ctx))
	})
	return c.snap, c.err
}

func (c *Catalog) load(ctx context.Context) (*Snapshot, error) {
	var (
		foods   []*model.Food
		recipes []*model.Recipe
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		foods, err = c.source.LoadFoods(gctx)
		if err != nil {
			return fmt.Errorf("failed to load foods: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recipes, err = c.source.LoadRecipes(gctx, c.embeddingModel)
		if err != nil {
			return fmt.Errorf("failed to load recipes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		logging.Error().Err(err).Msg("catalog load failed")
		return nil, err
	}

	snap, err := NewSnapshot(foods, recipes)
	if err != nil {
		logging.Error().Err(err).Msg("catalog load failed")
		return nil, err
	}

	metrics.DatasetRows.WithLabelValues("foods").Set(float64(len(snap.Foods)))
	metrics.DatasetRows.WithLabelValues("recipes").Set(float64(len(snap.Recipes)))
	logging.Info().
		Int("foods", len(snap.Foods)).
		Int("recipes", len(snap.Recipes)).
		Int("veg_recipes", len(snap.VegRecipes)).
		Int("embedding_dimensions", snap.Ingredients.Dimensions()).
		Str("embedding_model", c.embeddingModel).
		Msg("catalog loaded")
	return snap, nil
}
