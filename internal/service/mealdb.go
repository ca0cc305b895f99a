package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// maxIngredientSlots is the provider's numbered ingredient/measure slot
	// convention: strIngredient1..strIngredient20, strMeasure1..strMeasure20.
	maxIngredientSlots = 20

	// maxIngredientDetails caps how many ingredient-search matches get a full
	// detail lookup per discovery, bounding outbound fan-out.
	maxIngredientDetails = 6
)

// OnlineRecipe is a recipe mapped from an external provider record. It is
// transient: built per request, never persisted, and its ID shares no
// identity space with locally stored recipes.
type OnlineRecipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Thumbnail    string   `json:"thumbnail"`
	SourceURL    string   `json:"source_url"`
	Area         string   `json:"area"`
	Category     string   `json:"category"`
	Instructions string   `json:"instructions"`
	Ingredients  []string `json:"ingredients"`
}

// mealDBMeal is a flat provider record. Every field is a string or null, so
// the whole record decodes into one map and the numbered slots are read with
// a fixed-size scan instead of coupling to the full field list.
type mealDBMeal map[string]*string

func (m mealDBMeal) str(key string) string {
	if v := m[key]; v != nil {
		return *v
	}
	return ""
}

// ingredients extracts the enumerated slot pairs. Blank ingredient names are
// skipped; a present measure is prefixed to the ingredient name.
func (m mealDBMeal) ingredients() []string {
	out := make([]string, 0, maxIngredientSlots)
	for i := 1; i <= maxIngredientSlots; i++ {
		ingredient := strings.TrimSpace(m.str(fmt.Sprintf("strIngredient%d", i)))
		if ingredient == "" {
			continue
		}
		if measure := strings.TrimSpace(m.str(fmt.Sprintf("strMeasure%d", i))); measure != "" {
			ingredient = measure + " " + ingredient
		}
		out = append(out, ingredient)
	}
	return out
}

type mealDBResponse struct {
	Meals []mealDBMeal `json:"meals"`
}

// MealDBService queries TheMealDB for recipes by name and by ingredient.
type MealDBService struct {
	client *resty.Client
	logger *zap.Logger
}

// NewMealDBService creates a MealDB client against the given base URL.
func NewMealDBService(baseURL string, logger *zap.Logger) *MealDBService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &MealDBService{
		client: client,
		logger: logger,
	}
}

func (s *MealDBService) fetch(ctx context.Context, path, param, value string) ([]mealDBMeal, error) {
	var result mealDBResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam(param, value).
		SetResult(&result).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("mealdb request %s failed: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("mealdb request %s failed with status %d", path, resp.StatusCode())
	}
	return result.Meals, nil
}

// SearchByName queries the name-search endpoint. Its records are abbreviated
// but still carry the enumerated ingredient slots.
func (s *MealDBService) SearchByName(ctx context.Context, term string) ([]mealDBMeal, error) {
	return s.fetch(ctx, "/search.php", "s", term)
}

// FilterByIngredient queries the ingredient-filter endpoint. Its records lack
// ingredient breakdowns, so matches need a detail lookup.
func (s *MealDBService) FilterByIngredient(ctx context.Context, term string) ([]mealDBMeal, error) {
	return s.fetch(ctx, "/filter.php", "i", term)
}

// LookupByID fetches one fully detailed record. Returns nil without error
// when the provider has no record for the id.
func (s *MealDBService) LookupByID(ctx context.Context, id string) (mealDBMeal, error) {
	meals, err := s.fetch(ctx, "/lookup.php", "i", id)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, nil
	}
	return meals[0], nil
}

func toOnlineRecipe(meal mealDBMeal) OnlineRecipe {
	return OnlineRecipe{
		ID:           meal.str("idMeal"),
		Title:        meal.str("strMeal"),
		Thumbnail:    meal.str("strMealThumb"),
		SourceURL:    meal.str("strSource"),
		Area:         meal.str("strArea"),
		Category:     meal.str("strCategory"),
		Instructions: meal.str("strInstructions"),
		Ingredients:  meal.ingredients(),
	}
}

// Discover runs the full external lookup for a query: name search and
// ingredient search in parallel, detail lookups for the first
// maxIngredientDetails ingredient matches, then a merge deduplicated by
// provider id. When both sides matched the same dish the ingredient-sourced
// detail record wins, since the name-search record is abbreviated, but the
// entry keeps the position of its first appearance. A blank query returns an
// empty list without touching the network; any provider failure fails the
// whole discovery.
func (s *MealDBService) Discover(ctx context.Context, query string) ([]OnlineRecipe, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return []OnlineRecipe{}, nil
	}

	var nameMeals, ingredientMeals []mealDBMeal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		meals, err := s.SearchByName(gctx, term)
		nameMeals = meals
		return err
	})
	g.Go(func() error {
		meals, err := s.FilterByIngredient(gctx, term)
		ingredientMeals = meals
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("mealdb search failed", zap.String("query", term), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if len(ingredientMeals) > maxIngredientDetails {
		ingredientMeals = ingredientMeals[:maxIngredientDetails]
	}

	details := make([]mealDBMeal, len(ingredientMeals))
	g, gctx = errgroup.WithContext(ctx)
	for i, meal := range ingredientMeals {
		i, meal := i, meal
		g.Go(func() error {
			detail, err := s.LookupByID(gctx, meal.str("idMeal"))
			details[i] = detail
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("mealdb detail lookup failed", zap.String("query", term), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	// Ordered merge: later entries overwrite earlier values for the same id
	// but keep the earlier position.
	order := make([]string, 0, len(nameMeals)+len(details))
	byID := make(map[string]OnlineRecipe, len(nameMeals)+len(details))
	appendMeal := func(meal mealDBMeal) {
		recipe := toOnlineRecipe(meal)
		if _, seen := byID[recipe.ID]; !seen {
			order = append(order, recipe.ID)
		}
		byID[recipe.ID] = recipe
	}

	for _, meal := range nameMeals {
		appendMeal(meal)
	}
	for _, detail := range details {
		if detail == nil {
			// Provider had no record for the id; drop it.
			continue
		}
		appendMeal(detail)
	}

	recipes := make([]OnlineRecipe, 0, len(order))
	for _, id := range order {
		recipes = append(recipes, byID[id])
	}

	s.logger.Debug("mealdb discovery complete",
		zap.String("query", term),
		zap.Int("name_matches", len(nameMeals)),
		zap.Int("ingredient_matches", len(details)),
		zap.Int("merged", len(recipes)),
	)
	return recipes, nil
}
