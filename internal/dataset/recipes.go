package dataset

import (
	"errors"
	"fmt"
	"io"

	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/nutrient"
)

// Classifier assigns a dietary category from a recipe's ingredient parts and category cell.
type Classifier func(ingredientParts []string, category string) model.DietaryCategory

// RecipeOptions controls ReadRecipes.
type RecipeOptions struct {
	// EmbeddingModel is stamped on every recipe read.
	EmbeddingModel string
	// Classify fills DietaryCategory for rows where the column is absent or blank.
	Classify Classifier
}

// ReadRecipes reads a recipe export that carries precomputed ingredient embeddings.
func ReadRecipes(r io.Reader, opts RecipeOptions) ([]*model.Recipe, error) {
	required := append([]string{"Name", "RecipeIngredientParts", "IngredientEmbedding"}, nutrient.RecipeSchema.Names()...)
	t, err := newTable(r, required...)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipe dataset: %w", err)
	}

	var recipes []*model.Recipe
	for {
		rec, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		recipe, err := parseRecipe(rec, opts)
		if err != nil {
			return nil, err
		}
		recipe.Position = len(recipes)
		if err := recipe.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", rec.line, err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func parseRecipe(rec record, opts RecipeOptions) (*model.Recipe, error) {
	recipe := &model.Recipe{
		Name:                 rec.get("Name"),
		CookTime:             rec.get("CookTime"),
		Images:               ParseRList(rec.get("Images")),
		Category:             rec.get("RecipeCategory"),
		Keywords:             ParseRList(rec.get("Keywords")),
		IngredientQuantities: ParseRList(rec.get("RecipeIngredientQuantities")),
		IngredientParts:      ParseRList(rec.get("RecipeIngredientParts")),
		Instructions:         ParseRList(rec.get("RecipeInstructions")),
		DietaryCategory:      model.DietaryCategory(rec.get("DietaryCategory")),
		EmbeddingModel:       opts.EmbeddingModel,
	}

	for _, name := range nutrient.RecipeSchema.Names() {
		v, err := rec.float(name)
		if err != nil {
			return nil, err
		}
		if err := recipe.SetNutrient(name, v); err != nil {
			return nil, err
		}
	}

	embedding, err := ParseEmbedding(rec.get("IngredientEmbedding"))
	if err != nil {
		return nil, fmt.Errorf("line %d: recipe %q: %w", rec.line, recipe.Name, err)
	}
	recipe.IngredientEmbedding = embedding

	if recipe.DietaryCategory == "" && opts.Classify != nil {
		recipe.DietaryCategory = opts.Classify(recipe.IngredientParts, recipe.Category)
	}
	return recipe, nil
}
