package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ericli5683/food-recipes/internal/models"
	"github.com/ericli5683/food-recipes/internal/recipetext"
)

const (
	// maxFindResults is a hard truncation, not a page size.
	maxFindResults = 100

	minTitleLength        = 2
	minInstructionsLength = 10
)

// CreateRecipeInput carries the fields for a new recipe. SearchableText is
// always computed here, never accepted from callers.
type CreateRecipeInput struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Ingredients  []string            `json:"ingredients"`
	Instructions string              `json:"instructions"`
	ImageURL     string              `json:"image_url"`
	Source       models.RecipeSource `json:"-"`
	ExternalURL  string              `json:"-"`
}

// Validate checks the submission and reports every problem field at once.
func (in *CreateRecipeInput) Validate() error {
	fields := make(map[string]string)

	if len(strings.TrimSpace(in.Title)) < minTitleLength {
		fields["title"] = "title is required"
	}

	nonBlank := 0
	for _, ingredient := range in.Ingredients {
		if strings.TrimSpace(ingredient) != "" {
			nonBlank++
		}
	}
	if nonBlank == 0 {
		fields["ingredients"] = "add at least one ingredient"
	}

	if len(strings.TrimSpace(in.Instructions)) < minInstructionsLength {
		fields["instructions"] = "add cooking steps"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// RecipeService handles persisted recipe operations
type RecipeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		db:     db,
		logger: logger,
	}
}

func (s *RecipeService) buildRecipe(in CreateRecipeInput) (*models.Recipe, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	ingredients := make(models.StringArray, 0, len(in.Ingredients))
	for _, ingredient := range in.Ingredients {
		if trimmed := strings.TrimSpace(ingredient); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}

	instructions := strings.TrimSpace(in.Instructions)

	source := in.Source
	if source == "" {
		source = models.SourceUserSubmitted
	}

	return &models.Recipe{
		ID:             uuid.New(),
		Title:          title,
		Description:    description,
		Ingredients:    ingredients,
		Instructions:   instructions,
		ImageURL:       strings.TrimSpace(in.ImageURL),
		Source:         source,
		ExternalURL:    strings.TrimSpace(in.ExternalURL),
		SearchableText: recipetext.BuildSearchableText(title, description, ingredients, instructions),
	}, nil
}

// CreateRecipe validates and persists a new recipe, computing its searchable
// text at write time.
func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.buildRecipe(in)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.logger.Info("recipe created",
		zap.String("id", recipe.ID.String()),
		zap.String("title", recipe.Title),
		zap.String("source", string(recipe.Source)),
	)
	return recipe, nil
}

// FindRecipes returns recipes newest-first, capped at 100. A non-blank query
// filters to recipes whose searchable text contains it, case-insensitively;
// a blank query returns the most recent recipes unfiltered.
func (s *RecipeService) FindRecipes(ctx context.Context, query string) ([]models.Recipe, error) {
	dbQuery := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(maxFindResults)

	if term := strings.ToLower(strings.TrimSpace(query)); term != "" {
		dbQuery = dbQuery.Where("searchable_text LIKE ?", "%"+term+"%")
	}

	recipes := make([]models.Recipe, 0)
	if err := dbQuery.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to find recipes: %w", err)
	}
	return recipes, nil
}

// ReplaceImported deletes previously imported recipes matching the incoming
// external URLs, then inserts the batch. Only rows with the imported_online
// source are ever replaced; user-submitted recipes are untouched.
func (s *RecipeService) ReplaceImported(ctx context.Context, entries []CreateRecipeInput) (int, error) {
	recipes := make([]*models.Recipe, 0, len(entries))
	urls := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry.Source = models.SourceImportedOnline
		recipe, err := s.buildRecipe(entry)
		if err != nil {
			return 0, fmt.Errorf("entry %q: %w", entry.Title, err)
		}
		recipes = append(recipes, recipe)
		urls = append(urls, recipe.ExternalURL)
	}
	if len(recipes) == 0 {
		return 0, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("source = ? AND external_url IN ?", models.SourceImportedOnline, urls).
			Delete(&models.Recipe{}).Error; err != nil {
			return err
		}
		return tx.Create(&recipes).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to replace imported recipes: %w", err)
	}

	s.logger.Info("imported recipes replaced", zap.Int("count", len(recipes)))
	return len(recipes), nil
}
