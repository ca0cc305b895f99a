package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ericli5683/food-recipes/internal/service"
)

// Searcher aggregates local and external lookups for the combined search and
// image-discovery endpoints.
type Searcher interface {
	Search(ctx context.Context, query string) (*service.SearchResult, error)
	DiscoverFromImage(ctx context.Context, image []byte, mimeType string) (*service.ImageDiscovery, error)
}

// DiscoverHandler serves external recipe discovery and combined search.
type DiscoverHandler struct {
	online   service.OnlineDiscoverer
	searcher Searcher
	logger   *zap.Logger
}

// NewDiscoverHandler creates a new DiscoverHandler instance
func NewDiscoverHandler(online service.OnlineDiscoverer, searcher Searcher, logger *zap.Logger) *DiscoverHandler {
	return &DiscoverHandler{
		online:   online,
		searcher: searcher,
		logger:   logger,
	}
}

// RegisterRoutes registers the discovery routes on the given group. The
// image route takes extra middleware so callers can rate-limit it.
func (h *DiscoverHandler) RegisterRoutes(router *gin.RouterGroup, imageMiddleware ...gin.HandlerFunc) {
	router.GET("/discover", h.Discover)
	router.GET("/search", h.Search)

	handlers := append([]gin.HandlerFunc{}, imageMiddleware...)
	handlers = append(handlers, h.DiscoverFromImage)
	router.POST("/discover/image", handlers...)
}

// Discover searches the external provider only.
func (h *DiscoverHandler) Discover(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing q query parameter."})
		return
	}

	recipes, err := h.online.Discover(c.Request.Context(), query)
	if err != nil {
		h.logger.Warn("online discovery failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not fetch online recipes right now."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"recipes": recipes,
	})
}

// Search runs the combined local + external search. A blank query lists the
// local collection without hitting the provider.
func (h *DiscoverHandler) Search(c *gin.Context) {
	result, err := h.searcher.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		var serr *service.SearchError
		if errors.As(err, &serr) && serr.Side == service.SideLocal {
			h.logger.Error("local search failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not search saved recipes right now."})
			return
		}
		h.logger.Warn("online search failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not fetch online recipes right now."})
		return
	}

	c.JSON(http.StatusOK, result)
}

// DiscoverFromImage uploads a dish photo, detects the dish and discovers
// matching external recipes.
func (h *DiscoverHandler) DiscoverFromImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Attach an image file."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Attach an image file."})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Attach an image file."})
		return
	}

	result, err := h.searcher.DiscoverFromImage(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.respondImageError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondImageError maps the discovery error taxonomy onto status codes:
// configuration problems are 400-class, content problems 422, upstream
// failures 502.
func (h *DiscoverHandler) respondImageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnsupportedMedia):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Only image files are supported."})
	case errors.Is(err, service.ErrVisionNotConfigured):
		h.logger.Error("dish detection is not configured", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image discovery is not configured on this server."})
	case errors.Is(err, service.ErrDishNotIdentified):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not identify a dish from that photo. Try a clearer image."})
	case errors.Is(err, service.ErrProviderUnavailable):
		h.logger.Warn("online discovery failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not fetch online recipes right now."})
	default:
		h.logger.Error("image discovery failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not discover recipes from this image."})
	}
}
