package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/culinary-compass/backend/internal/service"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the loaded configuration and reports every problem at once.
func ValidateConfig(cfg *Config) error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.Server.Port == "" {
		fail("server.port", "is required")
	}

	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.DSN == "" && (cfg.Database.Host == "" || cfg.Database.Name == "") {
			fail("database", "postgres needs a dsn or a host and name")
		}
	case "sqlite":
		if cfg.Database.DSN == "" {
			fail("database.dsn", "sqlite needs a dsn")
		}
	default:
		fail("database.driver", "unsupported driver %q", cfg.Database.Driver)
	}

	if !service.IsSupportedEmbeddingModel(cfg.Embedding.Model) {
		fail("embedding.model", "unsupported model %q, choose from %v", cfg.Embedding.Model, service.SupportedEmbeddingModels)
	}
	switch cfg.Embedding.Backend {
	case EmbeddingBackendHTTP:
		if cfg.Embedding.URL == "" {
			fail("embedding.url", "is required for the http backend")
		}
	case EmbeddingBackendHashing:
	default:
		fail("embedding.backend", "unsupported backend %q", cfg.Embedding.Backend)
	}
	if cfg.Embedding.Dimensions < 0 {
		fail("embedding.dimensions", "must not be negative")
	}

	r := cfg.Recommender
	if r.FoodK <= 0 {
		fail("recommender.food_k", "must be positive")
	}
	if r.TopK <= 0 {
		fail("recommender.top_k", "must be positive")
	}
	if r.CandidateWindow <= 0 {
		fail("recommender.candidate_window", "must be positive")
	}
	for field, w := range map[string]float64{
		"recommender.nutrient_weight":   r.NutrientWeight,
		"recommender.ingredient_weight": r.IngredientWeight,
	} {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			fail(field, "must be a non-negative number")
		}
	}
	if r.NutrientWeight+r.IngredientWeight == 0 {
		fail("recommender", "nutrient and ingredient weights must not both be zero")
	}

	if cfg.Redis.RateLimit < 0 {
		fail("redis.rate_limit", "must not be negative")
	}

	if cfg.IsProduction() {
		if cfg.Auth.JWTSecret == "" {
			fail("auth.jwt_secret", "is required in production")
		}
		if cfg.Embedding.Backend != EmbeddingBackendHTTP {
			fail("embedding.backend", "production requires the http backend")
		}
	}

	return errors.Join(errs...)
}
