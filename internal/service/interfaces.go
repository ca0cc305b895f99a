package service

import (
	"context"

	"github.com/ericli5683/food-recipes/internal/models"
)

// RecipeFinder looks up persisted recipes by substring query.
type RecipeFinder interface {
	FindRecipes(ctx context.Context, query string) ([]models.Recipe, error)
}

// OnlineDiscoverer searches the external recipe provider.
type OnlineDiscoverer interface {
	Discover(ctx context.Context, query string) ([]OnlineRecipe, error)
}

// DishDetector names the dish in a food photo.
type DishDetector interface {
	DetectDishName(ctx context.Context, image []byte, mimeType string) (string, error)
}

// ImageSaver persists uploaded image bytes and returns an accessible URL.
type ImageSaver interface {
	SaveImage(ctx context.Context, data []byte, mimeType string) (string, error)
}
