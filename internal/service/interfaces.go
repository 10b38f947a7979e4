package service

import (
	"context"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/types"
)

// EmbeddingService turns free text into an embedding comparable with the
// recipe ingredient embeddings of the same model.
type EmbeddingService interface {
	GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	ModelName() string
}

// DatasetSource supplies the reference datasets, in dataset row order.
type DatasetSource interface {
	LoadFoods(ctx context.Context) ([]*model.Food, error)
	LoadRecipes(ctx context.Context, embeddingModel string) ([]*model.Recipe, error)
}

// IRecommender defines the recommendation operations exposed over HTTP
type IRecommender interface {
	RecommendFoods(ctx context.Context, deficiencies []string, category string) (types.RecommendationGroup, error)
	RecommendRecipes(ctx context.Context, targets map[string]float64, ingredients []string, pref types.DietaryPreference) ([]types.ScoredRecipe, error)
	NutrientRanges(ctx context.Context) ([]types.NutrientRange, error)
}

// HistoryStore persists recommendation history entries
type HistoryStore interface {
	Create(ctx context.Context, entry *model.HistoryEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.HistoryEntry, error)
}

// IHistoryService defines the interface for recommendation history operations
type IHistoryService interface {
	Save(ctx context.Context, userID uuid.UUID, req *types.SaveHistoryRequest) (*model.HistoryEntry, error)
	List(ctx context.Context, userID uuid.UUID) ([]*model.HistoryEntry, error)
}

// ITokenService issues and validates bearer tokens
type ITokenService interface {
	GenerateToken(claims *types.TokenClaims) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}
