package types

import (
	"time"

	"github.com/google/uuid"
)

// FoodRecommendationRequest is the body of POST /recommendations/foods
type FoodRecommendationRequest struct {
	Deficiencies []string `json:"deficiencies"`
	Category     string   `json:"category"`
}

type FoodRecommendationResponse struct {
	Recommendations RecommendationGroup `json:"recommendations"`
}

// RecipeRecommendationRequest is the body of POST /recommendations/recipes
type RecipeRecommendationRequest struct {
	Nutrients         map[string]float64 `json:"nutrients"`
	Ingredients       []string           `json:"ingredients"`
	DietaryPreference string             `json:"dietary_preference"`
}

type RecipeRecommendationResponse struct {
	Recipes []ScoredRecipe `json:"recipes"`
}

type NutrientsResponse struct {
	FoodNutrients   []string `json:"food_nutrients"`
	RecipeNutrients []string `json:"recipe_nutrients"`
}

type NutrientRangesResponse struct {
	Ranges []NutrientRange `json:"ranges"`
}

// SaveHistoryRequest records a finished recommendation session. BMI and its
// category are computed from weight and height when omitted.
type SaveHistoryRequest struct {
	Name           string   `json:"name" binding:"required,max=255"`
	Age            int      `json:"age" binding:"gte=0,lte=150"`
	Gender         string   `json:"gender" binding:"max=50"`
	Weight         float64  `json:"weight" binding:"gt=0"`
	Height         float64  `json:"height" binding:"gt=0"`
	BMI            *float64 `json:"bmi"`
	BMICategory    string   `json:"bmi_category"`
	FoodPreference string   `json:"food_preference"`
	Deficiencies   []string `json:"deficiencies"`
	Recommendation string   `json:"recommendation"`
}

type HistoryEntryResponse struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Name           string    `json:"name"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender"`
	Weight         float64   `json:"weight"`
	Height         float64   `json:"height"`
	BMI            float64   `json:"bmi"`
	BMICategory    string    `json:"bmi_category"`
	FoodPreference string    `json:"food_preference"`
	Deficiencies   []string  `json:"deficiencies"`
	Recommendation string    `json:"recommendation"`
}
