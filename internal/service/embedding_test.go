package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/pgvector/pgvector-go"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/culinary-compass/backend/internal/index"
	"github.com/culinary-compass/backend/internal/mocks"
	"github.com/culinary-compass/backend/internal/service"
	"github.com/culinary-compass/backend/internal/testhelpers"
)

func TestHTTPEmbeddingService(t *testing.T) {
	t.Run("flat response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer hf-token", r.Header.Get("Authorization"))
			assert.Equal(t, "true", r.Header.Get("x-wait-for-model"))

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "egg cheese", body["inputs"])

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[0.1, 0.2, 0.3]`))
		}))
		defer srv.Close()

		svc := service.NewHTTPEmbeddingService(service.HTTPEmbeddingConfig{
			URL: srv.URL, Token: "hf-token", Model: service.ModelMiniLM, Dimensions: 3,
		})
		defer svc.Close()

		vec, err := svc.GenerateEmbedding(context.Background(), "egg cheese")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec.Slice())
		assert.Equal(t, service.ModelMiniLM, svc.ModelName())
	})

	t.Run("batch response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[[1, 0]]`))
		}))
		defer srv.Close()

		svc := service.NewHTTPEmbeddingService(service.HTTPEmbeddingConfig{URL: srv.URL, Model: service.ModelMPNet})
		vec, err := svc.GenerateEmbedding(context.Background(), "rice")
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 0}, vec.Slice())
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[1, 0]`))
		}))
		defer srv.Close()

		svc := service.NewHTTPEmbeddingService(service.HTTPEmbeddingConfig{URL: srv.URL, Model: service.ModelMiniLM, Dimensions: 384})
		_, err := svc.GenerateEmbedding(context.Background(), "rice")
		assert.ErrorContains(t, err, "2 dimensions")
	})

	t.Run("api error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error": "Model is currently loading"}`))
		}))
		defer srv.Close()

		svc := service.NewHTTPEmbeddingService(service.HTTPEmbeddingConfig{URL: srv.URL, Model: service.ModelMiniLM})
		_, err := svc.GenerateEmbedding(context.Background(), "rice")
		assert.ErrorContains(t, err, "Model is currently loading")
	})
}

func TestHTTPEmbeddingServiceCircuitBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := service.NewHTTPEmbeddingService(service.HTTPEmbeddingConfig{URL: srv.URL, Model: "breaker-test"})
	for i := 0; i < 5; i++ {
		_, err := svc.GenerateEmbedding(context.Background(), "rice")
		require.Error(t, err)
	}

	_, err := svc.GenerateEmbedding(context.Background(), "rice")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(5), hits.Load())
}

func TestHashingEmbeddingService(t *testing.T) {
	svc := service.NewHashingEmbeddingService(service.ModelMiniLM, 64)
	ctx := context.Background()

	a, err := svc.GenerateEmbedding(ctx, "Egg, Cheese")
	require.NoError(t, err)
	b, err := svc.GenerateEmbedding(ctx, "egg cheese")
	require.NoError(t, err)
	assert.Equal(t, a.Slice(), b.Slice())
	assert.Len(t, a.Slice(), 64)
	assert.InDelta(t, 1.0, index.CosineSimilarity(a.Slice(), a.Slice()), 1e-6)

	related, err := svc.GenerateEmbedding(ctx, "cheese butter")
	require.NoError(t, err)
	assert.Greater(t, index.CosineSimilarity(a.Slice(), related.Slice()), 0.0)

	assert.Equal(t, make([]float32, 8), service.HashEmbed("  ,, ", 8))
	wide, err := service.NewHashingEmbeddingService("m", 0).GenerateEmbedding(ctx, "egg")
	require.NoError(t, err)
	assert.Len(t, wide.Slice(), 384)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.GenerateEmbedding(cctx, "egg")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCachedEmbeddingService(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)

	next := &mocks.MockEmbeddingService{}
	next.On("ModelName").Return(service.ModelMiniLM)
	next.On("GenerateEmbedding", mock.Anything, "egg cheese").
		Return(pgvector.NewVector([]float32{0.25, 0.5, 1}), nil).Once()

	svc := service.NewCachedEmbeddingService(next, client, 0)
	ctx := context.Background()

	first, err := svc.GenerateEmbedding(ctx, "egg cheese")
	require.NoError(t, err)
	second, err := svc.GenerateEmbedding(ctx, "egg cheese")
	require.NoError(t, err)

	assert.Equal(t, first.Slice(), second.Slice())
	assert.Equal(t, service.ModelMiniLM, svc.ModelName())
	next.AssertNumberOfCalls(t, "GenerateEmbedding", 1)

	keys, err := client.Keys(ctx, "embedding:"+service.ModelMiniLM+":*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestSupportedEmbeddingModels(t *testing.T) {
	assert.True(t, service.IsSupportedEmbeddingModel(service.ModelParaphrase))
	assert.False(t, service.IsSupportedEmbeddingModel("bert-base-uncased"))
}
