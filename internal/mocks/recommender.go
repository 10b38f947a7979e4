package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/types"
)

// MockRecommender is a mock implementation of the recommender
type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) RecommendFoods(ctx context.Context, deficiencies []string, category string) (types.RecommendationGroup, error) {
	args := m.Called(ctx, deficiencies, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.RecommendationGroup), args.Error(1)
}

func (m *MockRecommender) RecommendRecipes(ctx context.Context, targets map[string]float64, ingredients []string, pref types.DietaryPreference) ([]types.ScoredRecipe, error) {
	args := m.Called(ctx, targets, ingredients, pref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ScoredRecipe), args.Error(1)
}

func (m *MockRecommender) NutrientRanges(ctx context.Context) ([]types.NutrientRange, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.NutrientRange), args.Error(1)
}

// MockHistoryService is a mock implementation of the history service
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Save(ctx context.Context, userID uuid.UUID, req *types.SaveHistoryRequest) (*model.HistoryEntry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HistoryEntry), args.Error(1)
}

func (m *MockHistoryService) List(ctx context.Context, userID uuid.UUID) ([]*model.HistoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.HistoryEntry), args.Error(1)
}

// MockHistoryStore is a mock implementation of the history repository
type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) Create(ctx context.Context, entry *model.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*model.HistoryEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.HistoryEntry), args.Error(1)
}
