package index

import (
	"fmt"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/culinary-compass/backend/internal/errs"
)

// IngredientIndex scores a query embedding against a fixed corpus of recipe
// ingredient embeddings. Row i of the corpus corresponds to row i of the
// recipe slice it was built from.
type IngredientIndex struct {
	rows       [][]float32
	norms      []float64
	dimensions int
}

// NewIngredientIndex builds the index. All embeddings must share one dimensionality.
func NewIngredientIndex(embeddings []pgvector.Vector) (*IngredientIndex, error) {
	idx := &IngredientIndex{
		rows:  make([][]float32, len(embeddings)),
		norms: make([]float64, len(embeddings)),
	}
	for i, e := range embeddings {
		row := e.Slice()
		if i == 0 {
			idx.dimensions = len(row)
		} else if len(row) != idx.dimensions {
			return nil, fmt.Errorf("embedding %d has %d dimensions, want %d", i, len(row), idx.dimensions)
		}
		idx.rows[i] = row
		idx.norms[i] = norm32(row)
	}
	return idx, nil
}

// Len returns the corpus size.
func (idx *IngredientIndex) Len() int {
	return len(idx.rows)
}

// Dimensions returns the embedding width, or 0 for an empty corpus.
func (idx *IngredientIndex) Dimensions() int {
	return idx.dimensions
}

// Similarity returns the cosine similarity of query to every corpus row, in row order.
func (idx *IngredientIndex) Similarity(query pgvector.Vector) ([]float64, error) {
	q := query.Slice()
	if len(idx.rows) > 0 && len(q) != idx.dimensions {
		return nil, fmt.Errorf("query embedding has %d dimensions, corpus has %d: %w", len(q), idx.dimensions, errs.ErrInvalidInput)
	}

	qNorm := norm32(q)
	scores := make([]float64, len(idx.rows))
	for i, row := range idx.rows {
		if qNorm == 0 || idx.norms[i] == 0 {
			continue
		}
		var dot float64
		for j, x := range row {
			dot += float64(x) * float64(q[j])
		}
		scores[i] = clamp(dot / (qNorm * idx.norms[i]))
	}
	return scores, nil
}
