package index

import (
	"container/heap"
	"fmt"

	"github.com/culinary-compass/backend/internal/errs"
	"github.com/culinary-compass/backend/internal/model"
)

// Neighbor is a food returned by FoodIndex.Query with its distance to the query.
type Neighbor struct {
	Food     *model.Food
	Distance float64
	// Position is the food's row number in the indexed dataset.
	Position int
}

// FoodIndex is an exact k-nearest-neighbor index over food nutrient vectors
// using Euclidean distance.
type FoodIndex struct {
	foods      []*model.Food
	vectors    [][]float64
	dimensions int
}

// NewFoodIndex fits the index over foods in the given order. Every food must
// produce a vector of the given dimensionality.
func NewFoodIndex(foods []*model.Food, dimensions int) (*FoodIndex, error) {
	vectors := make([][]float64, len(foods))
	for i, f := range foods {
		v := f.NutrientVector()
		if len(v) != dimensions {
			return nil, fmt.Errorf("food %q has %d features, want %d", f.Description, len(v), dimensions)
		}
		vectors[i] = v
	}
	return &FoodIndex{foods: foods, vectors: vectors, dimensions: dimensions}, nil
}

// Len returns the number of indexed foods.
func (idx *FoodIndex) Len() int {
	return len(idx.foods)
}

// Dimensions returns the feature count of the index.
func (idx *FoodIndex) Dimensions() int {
	return idx.dimensions
}

// Query returns the k foods nearest to vec in ascending distance order. Equal
// distances keep dataset row order. k is clamped to [1, Len()].
func (idx *FoodIndex) Query(vec []float64, k int) ([]Neighbor, error) {
	if len(vec) != idx.dimensions {
		return nil, fmt.Errorf("query has %d features, index expects %d: %w", len(vec), idx.dimensions, errs.ErrInvalidInput)
	}
	if len(idx.foods) == 0 {
		return nil, fmt.Errorf("food index is empty: %w", errs.ErrNoResults)
	}
	if k < 1 {
		k = 1
	}
	if k > len(idx.foods) {
		k = len(idx.foods)
	}

	h := &neighborHeap{}
	for i, v := range idx.vectors {
		n := Neighbor{Food: idx.foods[i], Distance: EuclideanDistance(vec, v), Position: i}
		if h.Len() < k {
			heap.Push(h, n)
		} else if closer(n, (*h)[0]) {
			(*h)[0] = n
			heap.Fix(h, 0)
		}
	}

	results := make([]Neighbor, h.Len())
	for i := len(results) - 1; i >= 0; i-- {
		results[i] = heap.Pop(h).(Neighbor)
	}
	return results, nil
}

// closer orders neighbors by distance, then by dataset position.
func closer(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Position < b.Position
}

// neighborHeap keeps the farthest retained neighbor at the root so it can be evicted.
type neighborHeap []Neighbor

func (h neighborHeap) Len() int           { return len(h) }
func (h neighborHeap) Less(i, j int) bool { return closer(h[j], h[i]) }
func (h neighborHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *neighborHeap) Push(x interface{}) {
	*h = append(*h, x.(Neighbor))
}

func (h *neighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
