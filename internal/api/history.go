package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/culinary-compass/backend/internal/middleware"
	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/service"
	"github.com/culinary-compass/backend/internal/types"
)

type HistoryHandler struct {
	history service.IHistoryService
}

func NewHistoryHandler(history service.IHistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// RegisterRoutes expects router to run AuthMiddleware.
func (h *HistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/history", h.SaveHistory)
	router.GET("/history", h.ListHistory)
}

func (h *HistoryHandler) SaveHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.SaveHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entry, err := h.history.Save(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHistoryResponse(entry))
}

func (h *HistoryHandler) ListHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entries, err := h.history.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]types.HistoryEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toHistoryResponse(e)
	}
	c.JSON(http.StatusOK, gin.H{"history": resp})
}

func toHistoryResponse(e *model.HistoryEntry) types.HistoryEntryResponse {
	deficiencies := []string(e.Deficiencies)
	if deficiencies == nil {
		deficiencies = []string{}
	}
	return types.HistoryEntryResponse{
		ID:             e.ID,
		CreatedAt:      e.CreatedAt,
		Name:           e.Name,
		Age:            e.Age,
		Gender:         e.Gender,
		Weight:         e.WeightKg,
		Height:         e.HeightM,
		BMI:            e.BMI,
		BMICategory:    e.BMICategory,
		FoodPreference: e.FoodPreference,
		Deficiencies:   deficiencies,
		Recommendation: e.Recommendation,
	}
}
