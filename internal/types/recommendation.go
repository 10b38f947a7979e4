package types

import (
	"fmt"
	"strings"

	"github.com/culinary-compass/backend/internal/errs"
	"github.com/culinary-compass/backend/internal/model"
)

// RecommendationGroup lists recommended foods grouped by main category and
// sub category, both in first-seen order.
type RecommendationGroup []MainCategoryGroup

// MainCategoryGroup is one main category of a RecommendationGroup
type MainCategoryGroup struct {
	MainCategory  string             `json:"main_category"`
	SubCategories []SubCategoryGroup `json:"sub_categories"`
}

// SubCategoryGroup holds food descriptions of one sub category
type SubCategoryGroup struct {
	Name  string   `json:"name"`
	Foods []string `json:"foods"`
}

// Len returns the number of foods across all groups.
func (g RecommendationGroup) Len() int {
	n := 0
	for _, main := range g {
		for _, sub := range main.SubCategories {
			n += len(sub.Foods)
		}
	}
	return n
}

// ScoredRecipe is a ranked recipe with the scores that placed it.
type ScoredRecipe struct {
	Recipe               *model.Recipe `json:"recipe"`
	IngredientSimilarity float64       `json:"ingredient_similarity"`
	NutrientSimilarity   float64       `json:"nutrient_similarity"`
	CombinedScore        float64       `json:"combined_score"`
}

// DietaryPreference restricts which recipes are eligible for ranking.
type DietaryPreference string

const (
	PreferenceVeg    DietaryPreference = "Veg"
	PreferenceNonVeg DietaryPreference = "Non-Veg"
	PreferenceAny    DietaryPreference = "Any"
)

// ParseDietaryPreference accepts the preference names case-insensitively. An
// empty string means Any.
func ParseDietaryPreference(s string) (DietaryPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return PreferenceAny, nil
	case "veg":
		return PreferenceVeg, nil
	case "non-veg", "nonveg", "non veg":
		return PreferenceNonVeg, nil
	}
	return "", fmt.Errorf("unknown dietary preference %q: %w", s, errs.ErrInvalidInput)
}

// NutrientRange is the observed minimum and maximum of a recipe nutrient.
type NutrientRange struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}
