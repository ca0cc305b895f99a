// Command import_recipes loads a curated set of web recipes into the local
// store. Existing imported rows matching the same external URLs are replaced,
// so re-running the importer is safe; user-submitted recipes are never
// touched.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ericli5683/food-recipes/config"
	"github.com/ericli5683/food-recipes/internal/database"
	"github.com/ericli5683/food-recipes/internal/service"
)

type importEntry struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	ImageURL     string   `json:"image_url"`
	ExternalURL  string   `json:"external_url"`
}

func main() {
	file := flag.String("file", "cmd/import_recipes/recipes.json", "path to the recipe JSON file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal("failed to read recipe file", zap.String("file", *file), zap.Error(err))
	}

	var entries []importEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logger.Fatal("failed to parse recipe file", zap.String("file", *file), zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	inputs := make([]service.CreateRecipeInput, 0, len(entries))
	for _, entry := range entries {
		inputs = append(inputs, service.CreateRecipeInput{
			Title:        entry.Title,
			Description:  entry.Description,
			Ingredients:  entry.Ingredients,
			Instructions: entry.Instructions,
			ImageURL:     entry.ImageURL,
			ExternalURL:  entry.ExternalURL,
		})
	}

	recipeService := service.NewRecipeService(db, logger)
	count, err := recipeService.ReplaceImported(context.Background(), inputs)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	logger.Info("imported web recipes", zap.Int("count", count))
}
