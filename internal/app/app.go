// Package app wires configuration into a running recommendation API.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/culinary-compass/backend/config"
	"github.com/culinary-compass/backend/internal/api"
	"github.com/culinary-compass/backend/internal/database"
	"github.com/culinary-compass/backend/internal/logging"
	"github.com/culinary-compass/backend/internal/middleware"
	"github.com/culinary-compass/backend/internal/router"
	"github.com/culinary-compass/backend/internal/service"
)

// App holds the wired services behind the HTTP router.
type App struct {
	Router      *gin.Engine
	Recommender *service.Recommender
	Tokens      *service.TokenService
	DB          *gorm.DB

	embedder service.EmbeddingService
	redis    *redis.Client
}

// New connects to the configured stores and builds the router. The dataset is
// not loaded until Warm or the first request.
func New(cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.Database.Driver, cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	if cfg.Database.Driver == database.DriverSQLite {
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
	}
	a := &App{DB: db}

	if cfg.Redis.URL != "" {
		if a.redis, err = database.NewRedisClient(cfg.Redis.URL); err != nil {
			a.Close()
			return nil, err
		}
	}

	if a.embedder, err = NewEmbedder(cfg.Embedding); err != nil {
		a.Close()
		return nil, err
	}
	embedder := a.embedder
	if a.redis != nil {
		embedder = service.NewCachedEmbeddingService(embedder, a.redis, cfg.Redis.CacheTTL)
	}

	catalog := service.NewCatalog(database.NewDatasetRepository(db), embedder.ModelName())
	a.Recommender = service.NewRecommender(catalog, embedder, service.RecommenderConfig{
		FoodNeighbors: cfg.Recommender.FoodK,
		Ranking: service.RankingConfig{
			TopK:             cfg.Recommender.TopK,
			CandidateWindow:  cfg.Recommender.CandidateWindow,
			NutrientWeight:   cfg.Recommender.NutrientWeight,
			IngredientWeight: cfg.Recommender.IngredientWeight,
		},
	})
	a.Tokens = service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	deps := api.Dependencies{
		Recommender: a.Recommender,
		History:     service.NewHistoryService(database.NewHistoryRepository(db)),
		Tokens:      a.Tokens,
		Ping: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}
	if a.redis != nil && cfg.Redis.RateLimit > 0 {
		deps.RateLimiter = middleware.NewRateLimiter(a.redis, middleware.RateLimitConfig{
			Window: cfg.Redis.RateLimitWindow,
			Limit:  cfg.Redis.RateLimit,
		})
	}
	a.Router = router.SetupRouter(cfg.Server.CORSOrigins, deps)
	return a, nil
}

// NewEmbedder builds the configured embedding backend.
func NewEmbedder(cfg config.EmbeddingConfig) (service.EmbeddingService, error) {
	switch cfg.Backend {
	case config.EmbeddingBackendHTTP:
		if cfg.URL == "" {
			return nil, errors.New("embedding url is required for the http backend")
		}
		return service.NewHTTPEmbeddingService(service.HTTPEmbeddingConfig{
			URL:        cfg.URL,
			Token:      cfg.Token,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Timeout:    cfg.Timeout,
		}), nil
	case config.EmbeddingBackendHashing:
		logging.Warn().Str("model", cfg.Model).Msg("using hashing embeddings; recipe embeddings must come from the same backend")
		return service.NewHashingEmbeddingService(cfg.Model, cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding backend %q", cfg.Backend)
	}
}

// Warm loads the dataset so the first request does not pay for it.
func (a *App) Warm(ctx context.Context) error {
	return a.Recommender.Warm(ctx)
}

// Close releases the embedding client, redis and the database.
func (a *App) Close() error {
	var errs []error
	if c, ok := a.embedder.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
