package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/culinary-compass/backend/internal/api"
	"github.com/culinary-compass/backend/internal/middleware"
	"github.com/culinary-compass/backend/internal/mocks"
	"github.com/culinary-compass/backend/internal/types"
)

func TestSetupRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recommender := &mocks.MockRecommender{}
	recommender.On("NutrientRanges", mock.Anything).Return([]types.NutrientRange{}, nil)

	router := SetupRouter([]string{"*"}, api.Dependencies{
		Recommender: recommender,
		History:     &mocks.MockHistoryService{},
		Tokens:      &mocks.MockTokenService{},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/nutrient-ranges", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "api_requests_total")
}
