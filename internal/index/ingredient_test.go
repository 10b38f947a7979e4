package index

import (
	"testing"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culinary-compass/backend/internal/errs"
)

func TestIngredientIndexSimilarity(t *testing.T) {
	idx, err := NewIngredientIndex([]pgvector.Vector{
		pgvector.NewVector([]float32{1, 0, 0}),
		pgvector.NewVector([]float32{0, 1, 0}),
		pgvector.NewVector([]float32{0, 0, 0}),
		pgvector.NewVector([]float32{-1, 0, 0}),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Dimensions())

	got, err := idx.Similarity(pgvector.NewVector([]float32{2, 0, 0}))
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.InDelta(t, 1.0, got[0], 1e-6)
	assert.InDelta(t, 0.0, got[1], 1e-6)
	assert.Equal(t, 0.0, got[2], "zero-norm rows score 0")
	assert.InDelta(t, -1.0, got[3], 1e-6)

	zero, err := idx.Similarity(pgvector.NewVector([]float32{0, 0, 0}))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, zero, "zero query scores 0 everywhere")
}

func TestIngredientIndexDimensionChecks(t *testing.T) {
	_, err := NewIngredientIndex([]pgvector.Vector{
		pgvector.NewVector([]float32{1, 0}),
		pgvector.NewVector([]float32{1, 0, 0}),
	})
	assert.Error(t, err)

	idx, err := NewIngredientIndex([]pgvector.Vector{pgvector.NewVector([]float32{1, 0})})
	require.NoError(t, err)
	_, err = idx.Similarity(pgvector.NewVector([]float32{1, 0, 0}))
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}
