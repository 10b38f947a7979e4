package mocks

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/mock"

	"github.com/culinary-compass/backend/internal/model"
)

// MockEmbeddingService is a mock implementation of the embedding service
type MockEmbeddingService struct {
	mock.Mock
}

func (m *MockEmbeddingService) GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(pgvector.Vector), args.Error(1)
}

func (m *MockEmbeddingService) ModelName() string {
	args := m.Called()
	return args.String(0)
}

// MockDatasetSource is a mock implementation of the dataset source
type MockDatasetSource struct {
	mock.Mock
}

func (m *MockDatasetSource) LoadFoods(ctx context.Context) ([]*model.Food, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Food), args.Error(1)
}

func (m *MockDatasetSource) LoadRecipes(ctx context.Context, embeddingModel string) ([]*model.Recipe, error) {
	args := m.Called(ctx, embeddingModel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}
