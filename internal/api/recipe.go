package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ericli5683/food-recipes/internal/recipetext"
	"github.com/ericli5683/food-recipes/internal/service"
)

// RecipeHandler serves the locally persisted recipe collection.
type RecipeHandler struct {
	recipes *service.RecipeService
	uploads service.ImageSaver
	logger  *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes *service.RecipeService, uploads service.ImageSaver, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		uploads: uploads,
		logger:  logger,
	}
}

// RegisterRoutes registers the recipe routes on the given group.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
	}
}

// ListRecipes returns up to 100 recipes newest-first, optionally filtered by
// the q parameter as a substring of the searchable text.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.FindRecipes(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Error("failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// CreateRecipe accepts either a JSON body or a multipart form. The form
// variant takes ingredients as newline/comma separated text and an optional
// image file which is uploaded before the recipe is persisted.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var in service.CreateRecipeInput

	if strings.Contains(c.ContentType(), "application/json") {
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe input"})
			return
		}
	} else {
		in = service.CreateRecipeInput{
			Title:        c.PostForm("title"),
			Description:  c.PostForm("description"),
			Ingredients:  recipetext.ParseIngredients(c.PostForm("ingredients")),
			Instructions: c.PostForm("instructions"),
		}

		imageURL, err := h.saveFormImage(c)
		if err != nil {
			if errors.Is(err, service.ErrUnsupportedMedia) {
				c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Only image files are supported."})
				return
			}
			h.logger.Error("failed to store recipe image", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not store the recipe image right now."})
			return
		}
		in.ImageURL = imageURL
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), in)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Invalid recipe input",
				"fields": verr.Fields,
			})
			return
		}
		h.logger.Error("failed to create recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// saveFormImage uploads the optional image file of a multipart submission and
// returns its URL, or "" when no file was attached.
func (h *RecipeHandler) saveFormImage(c *gin.Context) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file attached.
		return "", nil
	}
	if fileHeader.Size == 0 {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return h.uploads.SaveImage(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
}
