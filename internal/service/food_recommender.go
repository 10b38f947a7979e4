package service

import (
	"context"
	"fmt"

	"github.com/culinary-compass/backend/internal/errs"
	"github.com/culinary-compass/backend/internal/index"
	"github.com/culinary-compass/backend/internal/nutrient"
	"github.com/culinary-compass/backend/internal/types"
)

// DefaultFoodNeighbors is the number of foods retrieved per deficiency query.
const DefaultFoodNeighbors = 5

// VegCategory is the only category value that filters food recommendations.
const VegCategory = "Veg"

// FoodRecommender answers deficiency queries with grouped food lists.
type FoodRecommender struct {
	catalog *Catalog
	k       int
}

func NewFoodRecommender(catalog *Catalog, k int) *FoodRecommender {
	if k <= 0 {
		k = DefaultFoodNeighbors
	}
	return &FoodRecommender{catalog: catalog, k: k}
}

// Recommend encodes the deficiencies, retrieves the nearest foods and groups
// them by category. Only category "Veg" filters the neighbors; when the
// filter removes every neighbor the result is ErrNoResults.
func (r *FoodRecommender) Recommend(ctx context.Context, deficiencies []string, category string) (types.RecommendationGroup, error) {
	vec, err := nutrient.FoodSchema.Encode(deficiencies)
	if err != nil {
		return nil, err
	}

	snap, err := r.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	neighbors, err := snap.FoodIndex.Query(vec, r.k)
	if err != nil {
		return nil, err
	}

	if category == VegCategory {
		kept := neighbors[:0:0]
		for _, n := range neighbors {
			if n.Food.MainCategory == VegCategory {
				kept = append(kept, n)
			}
		}
		neighbors = kept
	}
	if len(neighbors) == 0 {
		return nil, errs.NoResultsForCategory(category)
	}

	return GroupFoods(neighbors), nil
}

// GroupFoods groups neighbors by main and then sub category, keeping the
// order in which each category is first seen.
func GroupFoods(neighbors []index.Neighbor) types.RecommendationGroup {
	var groups types.RecommendationGroup
	mainPos := make(map[string]int)
	subPos := make(map[[2]string]int)

	for _, n := range neighbors {
		main, sub := n.Food.MainCategory, n.Food.SubCategory

		mi, ok := mainPos[main]
		if !ok {
			mi = len(groups)
			mainPos[main] = mi
			groups = append(groups, types.MainCategoryGroup{MainCategory: main})
		}

		key := [2]string{main, sub}
		si, ok := subPos[key]
		if !ok {
			si = len(groups[mi].SubCategories)
			subPos[key] = si
			groups[mi].SubCategories = append(groups[mi].SubCategories, types.SubCategoryGroup{Name: sub})
		}

		groups[mi].SubCategories[si].Foods = append(groups[mi].SubCategories[si].Foods, n.Food.Description)
	}
	return groups
}
