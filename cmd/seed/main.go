package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/culinary-compass/backend/config"
	"github.com/culinary-compass/backend/internal/database"
	"github.com/culinary-compass/backend/internal/dataset"
	"github.com/culinary-compass/backend/internal/logging"
	"github.com/culinary-compass/backend/internal/model"
	"github.com/culinary-compass/backend/internal/service"
)

func main() {
	foodsPath := flag.String("foods", "", "food dataset CSV (path or s3://bucket/key)")
	recipesPath := flag.String("recipes", "", "recipe dataset CSV with ingredient embeddings (path or s3://bucket/key)")
	embeddingModel := flag.String("model", "", "embedding model of the recipe file (defaults to embedding.model)")
	flag.Parse()

	if *foodsPath == "" && *recipesPath == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -foods foods.csv -recipes recipes.csv [-model name]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	modelName := cfg.Embedding.Model
	if *embeddingModel != "" {
		modelName = *embeddingModel
	}
	if !service.IsSupportedEmbeddingModel(modelName) {
		logging.Fatal().Str("model", modelName).Strs("supported", service.SupportedEmbeddingModels).Msg("unsupported embedding model")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database.Driver, cfg.Database.ConnectionString())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	repo := database.NewDatasetRepository(db)

	if *foodsPath != "" {
		foods, err := readFoods(ctx, *foodsPath, cfg.Storage)
		if err != nil {
			logging.Fatal().Err(err).Str("source", *foodsPath).Msg("failed to read foods")
		}
		if err := repo.ReplaceFoods(ctx, foods); err != nil {
			logging.Fatal().Err(err).Msg("failed to store foods")
		}
		logging.Info().Int("rows", len(foods)).Msg("foods imported")
	}

	if *recipesPath != "" {
		recipes, err := readRecipes(ctx, *recipesPath, modelName, cfg.Storage)
		if err != nil {
			logging.Fatal().Err(err).Str("source", *recipesPath).Msg("failed to read recipes")
		}
		if err := repo.ReplaceRecipes(ctx, modelName, recipes); err != nil {
			logging.Fatal().Err(err).Msg("failed to store recipes")
		}
		logging.Info().Int("rows", len(recipes)).Str("model", modelName).Msg("recipes imported")
	}
}

func readFoods(ctx context.Context, location string, storage config.StorageConfig) ([]*model.Food, error) {
	r, err := config.OpenDataset(ctx, location, storage)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return dataset.ReadFoods(r)
}

func readRecipes(ctx context.Context, location, modelName string, storage config.StorageConfig) ([]*model.Recipe, error) {
	r, err := config.OpenDataset(ctx, location, storage)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return dataset.ReadRecipes(r, dataset.RecipeOptions{
		EmbeddingModel: modelName,
		Classify:       service.ClassifyDiet,
	})
}
