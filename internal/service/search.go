package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ericli5683/food-recipes/internal/models"
)

// allDishesLabel is the query label reported for a blank text search.
const allDishesLabel = "all dishes"

// SearchResult is a combined local + external search response. The two lists
// stay separate: a Recipe and an OnlineRecipe never merge into one record.
type SearchResult struct {
	Query         string          `json:"query"`
	LocalRecipes  []models.Recipe `json:"local_recipes"`
	OnlineRecipes []OnlineRecipe  `json:"online_recipes"`
}

// ImageDiscovery is the result of a dish-photo discovery.
type ImageDiscovery struct {
	DetectedDish     string         `json:"detected_dish"`
	UploadedImageURL string         `json:"uploaded_image_url"`
	Recipes          []OnlineRecipe `json:"recipes"`
}

// SearchService orchestrates local and external recipe lookups.
type SearchService struct {
	recipes  RecipeFinder
	online   OnlineDiscoverer
	detector DishDetector
	uploads  ImageSaver
	logger   *zap.Logger
}

// NewSearchService creates a new SearchService instance
func NewSearchService(recipes RecipeFinder, online OnlineDiscoverer, detector DishDetector, uploads ImageSaver, logger *zap.Logger) *SearchService {
	return &SearchService{
		recipes:  recipes,
		online:   online,
		detector: detector,
		uploads:  uploads,
		logger:   logger,
	}
}

// Search runs a combined text search. A blank query lists all local recipes
// with no external results. A non-blank query fans out to the local store and
// the external provider concurrently; if either side fails the whole search
// fails with a SearchError naming the side, never a half-populated success.
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)

	if query == "" {
		local, err := s.recipes.FindRecipes(ctx, "")
		if err != nil {
			return nil, &SearchError{Side: SideLocal, Err: err}
		}
		return &SearchResult{
			Query:         allDishesLabel,
			LocalRecipes:  local,
			OnlineRecipes: []OnlineRecipe{},
		}, nil
	}

	var local []models.Recipe
	var online []OnlineRecipe

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recipes, err := s.recipes.FindRecipes(gctx, query)
		if err != nil {
			return &SearchError{Side: SideLocal, Err: err}
		}
		local = recipes
		return nil
	})
	g.Go(func() error {
		recipes, err := s.online.Discover(gctx, query)
		if err != nil {
			return &SearchError{Side: SideOnline, Err: err}
		}
		online = recipes
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("combined search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	return &SearchResult{
		Query:         query,
		LocalRecipes:  local,
		OnlineRecipes: online,
	}, nil
}

// DiscoverFromImage stores the uploaded photo, asks the vision model for a
// dish label and discovers matching external recipes. Local search is
// intentionally skipped here; callers reuse the detected label as an ordinary
// text query afterwards. An empty label fails with ErrDishNotIdentified
// before any external discovery.
func (s *SearchService) DiscoverFromImage(ctx context.Context, image []byte, mimeType string) (*ImageDiscovery, error) {
	imageURL, err := s.uploads.SaveImage(ctx, image, mimeType)
	if err != nil {
		return nil, err
	}

	label, err := s.detector.DetectDishName(ctx, image, mimeType)
	if err != nil {
		return nil, err
	}
	if label == "" {
		return nil, ErrDishNotIdentified
	}

	recipes, err := s.online.Discover(ctx, label)
	if err != nil {
		return nil, err
	}

	s.logger.Info("image discovery complete",
		zap.String("detected_dish", label),
		zap.Int("recipes", len(recipes)),
	)
	return &ImageDiscovery{
		DetectedDish:     label,
		UploadedImageURL: imageURL,
		Recipes:          recipes,
	}, nil
}
