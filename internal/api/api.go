package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/culinary-compass/backend/internal/logging"
	"github.com/culinary-compass/backend/internal/middleware"
	"github.com/culinary-compass/backend/internal/service"
)

// Dependencies are the services the HTTP API is built on. RateLimiter and
// Ping are optional.
type Dependencies struct {
	Recommender service.IRecommender
	History     service.IHistoryService
	Tokens      middleware.TokenValidator
	RateLimiter *middleware.RateLimiter
	Ping        func(ctx context.Context) error
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/health", HealthCheck(deps.Ping))

	v1 := router.Group("/api/v1")

	recommendations := NewRecommendationHandler(deps.Recommender)
	var limit []gin.HandlerFunc
	if deps.RateLimiter != nil {
		limit = append(limit, deps.RateLimiter.RateLimitMiddleware())
	}
	recommendations.RegisterRoutes(v1, limit...)

	history := NewHistoryHandler(deps.History)
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	history.RegisterRoutes(protected)
}

// HealthCheck reports whether the API and, when ping is set, its database are reachable.
func HealthCheck(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				logging.Ctx(c.Request.Context()).Warn().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
