package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/culinary-compass/backend/internal/api"
	"github.com/culinary-compass/backend/internal/middleware"
)

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(corsOrigins []string, deps api.Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.RegisterRoutes(router, deps)

	return router
}
