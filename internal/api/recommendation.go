package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culinary-compass/backend/internal/nutrient"
	"github.com/culinary-compass/backend/internal/service"
	"github.com/culinary-compass/backend/internal/types"
)

type RecommendationHandler struct {
	recommender service.IRecommender
}

func NewRecommendationHandler(recommender service.IRecommender) *RecommendationHandler {
	return &RecommendationHandler{recommender: recommender}
}

// RegisterRoutes mounts the recommendation routes. limit runs before the
// two recommendation endpoints.
func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup, limit ...gin.HandlerFunc) {
	router.GET("/nutrients", h.ListNutrients)
	router.GET("/recipes/nutrient-ranges", h.NutrientRanges)

	recs := router.Group("/recommendations")
	recs.Use(limit...)
	{
		recs.POST("/foods", h.RecommendFoods)
		recs.POST("/recipes", h.RecommendRecipes)
	}
}

// ListNutrients returns the nutrient names accepted by both recommenders.
func (h *RecommendationHandler) ListNutrients(c *gin.Context) {
	c.JSON(http.StatusOK, types.NutrientsResponse{
		FoodNutrients:   nutrient.FoodSchema.Names(),
		RecipeNutrients: nutrient.RecipeSchema.Names(),
	})
}

func (h *RecommendationHandler) NutrientRanges(c *gin.Context) {
	ranges, err := h.recommender.NutrientRanges(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.NutrientRangesResponse{Ranges: ranges})
}

func (h *RecommendationHandler) RecommendFoods(c *gin.Context) {
	var req types.FoodRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	groups, err := h.recommender.RecommendFoods(c.Request.Context(), req.Deficiencies, req.Category)
	if err != nil {
		writeError(c, err)
		return
	}
	if groups == nil {
		groups = types.RecommendationGroup{}
	}
	c.JSON(http.StatusOK, types.FoodRecommendationResponse{Recommendations: groups})
}

func (h *RecommendationHandler) RecommendRecipes(c *gin.Context) {
	var req types.RecipeRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pref, err := types.ParseDietaryPreference(req.DietaryPreference)
	if err != nil {
		writeError(c, err)
		return
	}

	recipes, err := h.recommender.RecommendRecipes(c.Request.Context(), req.Nutrients, req.Ingredients, pref)
	if err != nil {
		writeError(c, err)
		return
	}
	if recipes == nil {
		recipes = []types.ScoredRecipe{}
	}
	c.JSON(http.StatusOK, types.RecipeRecommendationResponse{Recipes: recipes})
}
