package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/culinary-compass/backend/internal/model"
)

const insertBatchSize = 200

// DatasetRepository stores the reference food and recipe datasets.
type DatasetRepository struct {
	db *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// LoadFoods returns every food in insertion order.
func (r *DatasetRepository) LoadFoods(ctx context.Context) ([]*model.Food, error) {
	var foods []*model.Food
	if err := r.db.WithContext(ctx).Order("id").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	for _, f := range foods {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}
	return foods, nil
}

// LoadRecipes returns the recipes embedded with embeddingModel in dataset order.
func (r *DatasetRepository) LoadRecipes(ctx context.Context, embeddingModel string) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	err := r.db.WithContext(ctx).
		Where("embedding_model = ?", embeddingModel).
		Order("position").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	for _, rec := range recipes {
		if err := rec.Validate(); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

// ReplaceFoods swaps the food table contents for foods.
func (r *DatasetRepository) ReplaceFoods(ctx context.Context, foods []*model.Food) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Food{}).Error; err != nil {
			return fmt.Errorf("failed to clear foods: %w", err)
		}
		if len(foods) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(foods, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert foods: %w", err)
		}
		return nil
	})
}

// ReplaceRecipes swaps the recipes of one embedding model for recipes.
// Positions are reassigned from slice order.
func (r *DatasetRepository) ReplaceRecipes(ctx context.Context, embeddingModel string, recipes []*model.Recipe) error {
	for i, rec := range recipes {
		rec.Position = i
		rec.EmbeddingModel = embeddingModel
		if err := rec.Validate(); err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("embedding_model = ?", embeddingModel).Delete(&model.Recipe{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipes: %w", err)
		}
		if len(recipes) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(recipes, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert recipes: %w", err)
		}
		return nil
	})
}

// CountRecipes reports how many recipes exist per embedding model.
func (r *DatasetRepository) CountRecipes(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		EmbeddingModel string
		Count          int64
	}
	err := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Select("embedding_model, count(*) as count").
		Group("embedding_model").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EmbeddingModel] = row.Count
	}
	return counts, nil
}
